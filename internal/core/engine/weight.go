package engine

import (
	"strings"
)

// pieceUnits are counting units resolved through the per-ingredient weight
// table instead of the plain unit conversions.
var pieceUnits = map[string]bool{
	"piece": true,
	"pcs":   true,
	"unit":  true,
}

// Grams converts an amount in the given unit to grams for the named
// ingredient. Unknown units yield 0, which callers treat as "could not
// convert" rather than an error. No rounding happens here.
func (t *Tables) Grams(amount float64, unit, ingredientName string) float64 {
	cleanUnit := t.NormalizeUnit(unit)

	if gramsPerUnit, ok := t.Conversions[cleanUnit]; ok && !pieceUnits[cleanUnit] {
		return amount * gramsPerUnit
	}

	if pieceUnits[cleanUnit] {
		name := strings.ToLower(ingredientName)
		for _, keyword := range t.pieceKeys {
			if strings.Contains(name, keyword) {
				return amount * t.PieceWeights[keyword]
			}
		}
		// generic fallback weight for an unlisted piece
		return amount * t.Conversions["piece"]
	}

	return 0
}
