package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

// Dimensionless is the unit reported when a number carries no recognized unit
// (e.g. "2 onions"). The unit map decides what to do with it.
const Dimensionless = "dimensionless"

// Quantity is one extracted amount: numeric value, unit name, and the exact
// substring of the input it was parsed from.
type Quantity struct {
	Value   float64
	Unit    string
	Surface string
}

// Parser extracts quantities from a free-text ingredient line.
type Parser interface {
	Parse(line string) []Quantity
}

// RegexParser is the default Parser. It recognizes decimals (dot or comma),
// simple and mixed fractions, and an optional trailing unit word validated
// against a known-unit vocabulary.
type RegexParser struct {
	units map[string]bool
}

// NewRegexParser builds a parser that accepts the given unit words. Matching
// is case-insensitive; a trailing dot on the unit ("stk.") is tolerated.
func NewRegexParser(unitVocabulary []string) *RegexParser {
	units := make(map[string]bool, len(unitVocabulary))
	for _, u := range unitVocabulary {
		units[strings.ToLower(strings.TrimSuffix(u, "."))] = true
	}
	return &RegexParser{units: units}
}

// number, then optionally a unit word glued on or separated by spaces
var quantityPattern = regexp.MustCompile(`(\d+\s+\d+/\d+|\d+/\d+|\d+(?:[.,]\d+)?)\s*([\p{L}]+\.?)?`)

// Parse returns every quantity found in the line, in input order. A line with
// no numbers yields nil.
func (p *RegexParser) Parse(line string) []Quantity {
	matches := quantityPattern.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return nil
	}

	var out []Quantity
	for _, m := range matches {
		numText := line[m[2]:m[3]]
		value, ok := parseNumber(numText)
		if !ok {
			continue
		}

		unit := Dimensionless
		surfaceEnd := m[3]
		if m[4] >= 0 {
			word := line[m[4]:m[5]]
			if p.units[strings.ToLower(strings.TrimSuffix(word, "."))] {
				unit = strings.ToLower(strings.TrimSuffix(word, "."))
				surfaceEnd = m[5]
			}
		}

		out = append(out, Quantity{
			Value:   value,
			Unit:    unit,
			Surface: line[m[0]:surfaceEnd],
		})
	}
	return out
}

// parseNumber handles "200", "0.5", "1,5", "3/4" and "1 1/2".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "/") {
		whole := 0.0
		frac := s
		if fields := strings.Fields(s); len(fields) == 2 {
			w, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return 0, false
			}
			whole = w
			frac = fields[1]
		}
		parts := strings.SplitN(frac, "/", 2)
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return whole + num/den, true
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
