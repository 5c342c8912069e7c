package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Tables holds the conversion and rewrite mappings the engine depends on.
// They are loaded once at startup from JSON config files and read-only for
// the process lifetime.
type Tables struct {
	// Conversions maps a normalized unit name to grams per unit.
	Conversions map[string]float64
	// PieceWeights maps an ingredient keyword to grams per piece.
	PieceWeights map[string]float64
	// UnitMap maps a raw parsed unit name to its normalized form.
	UnitMap map[string]string
	// Informal maps a colloquial quantity word ("handful") to a literal
	// replacement ("30g") substituted before quantity parsing.
	Informal map[string]string
	// Aliases maps a free-text phrase to the canonical search phrase.
	Aliases map[string]string

	informalKeys []string
	pieceKeys    []string
	aliasKeys    []string
}

type unitsFile struct {
	Conversions       map[string]float64 `json:"conversions"`
	IngredientWeights map[string]float64 `json:"ingredient_weights"`
	UnitMap           map[string]string  `json:"unit_map"`
	InformalUnits     map[string]string  `json:"informal_units"`
}

type aliasesFile struct {
	Aliases map[string]string `json:"aliases"`
}

// LoadTables reads the unit and alias table files.
func LoadTables(unitsPath, aliasesPath string) (*Tables, error) {
	var units unitsFile
	if err := readJSON(unitsPath, &units); err != nil {
		return nil, fmt.Errorf("failed to load unit table: %w", err)
	}

	var aliases aliasesFile
	if err := readJSON(aliasesPath, &aliases); err != nil {
		return nil, fmt.Errorf("failed to load alias table: %w", err)
	}

	return NewTables(units.Conversions, units.IngredientWeights, units.UnitMap, units.InformalUnits, aliases.Aliases), nil
}

// NewTables builds a Tables value from in-memory maps. Tests inject fixtures
// through here.
func NewTables(conversions, pieceWeights map[string]float64, unitMap, informal, aliases map[string]string) *Tables {
	t := &Tables{
		Conversions:  conversions,
		PieceWeights: pieceWeights,
		UnitMap:      unitMap,
		Informal:     informal,
		Aliases:      aliases,
	}
	if t.Conversions == nil {
		t.Conversions = map[string]float64{}
	}
	if t.PieceWeights == nil {
		t.PieceWeights = map[string]float64{}
	}
	if t.UnitMap == nil {
		t.UnitMap = map[string]string{}
	}
	if t.Informal == nil {
		t.Informal = map[string]string{}
	}
	if t.Aliases == nil {
		t.Aliases = map[string]string{}
	}

	// Longer keys first so specific phrases beat their substrings; the
	// lexicographic tie-break keeps iteration deterministic.
	t.informalKeys = sortedByLengthDesc(t.Informal)
	t.aliasKeys = sortedByLengthDesc(t.Aliases)
	t.pieceKeys = make([]string, 0, len(t.PieceWeights))
	for k := range t.PieceWeights {
		t.pieceKeys = append(t.pieceKeys, k)
	}
	sort.Slice(t.pieceKeys, func(i, j int) bool {
		if len(t.pieceKeys[i]) != len(t.pieceKeys[j]) {
			return len(t.pieceKeys[i]) > len(t.pieceKeys[j])
		}
		return t.pieceKeys[i] < t.pieceKeys[j]
	})

	return t
}

// NormalizeUnit maps a raw unit name to its normalized form, defaulting to
// the lowercased raw name when unmapped.
func (t *Tables) NormalizeUnit(unit string) string {
	lower := strings.ToLower(strings.TrimSpace(unit))
	if mapped, ok := t.UnitMap[lower]; ok {
		return mapped
	}
	return lower
}

// UnitVocabulary returns every unit word the quantity parser should accept:
// the raw names in the unit map plus the normalized unit names themselves.
func (t *Tables) UnitVocabulary() []string {
	seen := make(map[string]bool)
	var vocab []string
	for raw := range t.UnitMap {
		if !seen[raw] {
			seen[raw] = true
			vocab = append(vocab, raw)
		}
	}
	for unit := range t.Conversions {
		if !seen[unit] {
			seen[unit] = true
			vocab = append(vocab, unit)
		}
	}
	sort.Strings(vocab)
	return vocab
}

func sortedByLengthDesc(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
