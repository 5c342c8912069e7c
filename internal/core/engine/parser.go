package engine

import (
	"regexp"
	"strings"

	"mealprint/internal/core/quantity"
)

// fillerPhrases are stripped from unquantified lines before matching.
var fillerPhrases = []string{"to taste", "as needed", "for garnish", "optional", "a pinch of", "pinch of"}

// LineParser turns one free-text ingredient line into an amount, a unit and a
// search query. Matching against the catalog happens separately.
type LineParser struct {
	tables     *Tables
	quantities quantity.Parser
}

// NewLineParser creates a line parser over the given tables and quantity
// parser.
func NewLineParser(tables *Tables, quantities quantity.Parser) *LineParser {
	return &LineParser{tables: tables, quantities: quantities}
}

// ParseLine parses a single ingredient line. The second return value is false
// for lines that should be skipped (empty after trimming). Candidates and
// confidence are filled in by the matcher.
func (p *LineParser) ParseLine(line string) (ParsedLine, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParsedLine{}, false
	}

	line = p.substituteInformalUnits(line)

	quants := p.quantities.Parse(line)
	if len(quants) == 0 {
		return ParsedLine{
			OriginalLine: line,
			Amount:       1,
			Unit:         "piece",
			Query:        stripFillers(line),
		}, true
	}

	q := quants[0]
	query := strings.TrimSpace(strings.Replace(line, q.Surface, "", 1))
	// drop trailing qualifiers like ", or more to taste"
	query = strings.TrimSpace(strings.SplitN(query, ",", 2)[0])

	return ParsedLine{
		OriginalLine: line,
		Amount:       q.Value,
		Unit:         p.tables.NormalizeUnit(q.Unit),
		Query:        query,
	}, true
}

// substituteInformalUnits replaces the first informal quantity word (with any
// leading number) by its fixed gram-equivalent literal. Longest keyword wins.
func (p *LineParser) substituteInformalUnits(line string) string {
	lower := strings.ToLower(line)
	for _, informal := range p.tables.informalKeys {
		if !strings.Contains(lower, informal) {
			continue
		}
		re, err := regexp.Compile(`(?i)(\d+\s*)?` + regexp.QuoteMeta(informal))
		if err != nil {
			continue
		}
		if loc := re.FindStringIndex(line); loc != nil {
			return line[:loc[0]] + p.tables.Informal[informal] + line[loc[1]:]
		}
		return line
	}
	return line
}

// stripFillers lowercases the line and removes common non-quantity phrases
// ("salt to taste" -> "salt").
func stripFillers(line string) string {
	query := strings.ToLower(line)
	for _, phrase := range fillerPhrases {
		query = strings.TrimSpace(strings.ReplaceAll(query, phrase, ""))
	}
	return strings.Trim(query, ",")
}
