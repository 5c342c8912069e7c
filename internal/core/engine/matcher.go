package engine

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// fuzzy similarity floor for a name to be proposed at all (0-100)
	fuzzyScoreCutoff = 40
	// best-fuzzy threshold above which a match counts as confident even
	// without token overlap
	fuzzyConfidenceThreshold = 70

	maxFuzzyMatches    = 20
	maxContainsMatches = 10
	maxCandidates      = 15

	minTokenLength = 3
)

// MatchCandidates resolves a search query against the known climate names.
// It applies the alias rewrite, then merges token-overlap matches with fuzzy
// matches into an ordered, deduplicated candidate list. Pure function: same
// inputs always produce the same ordered output.
func MatchCandidates(query string, names []string, tables *Tables) (candidates []string, confident bool) {
	query = rewriteAlias(query, tables)

	contains := containsMatches(query, names)

	fuzzyNames, bestFuzzy := fuzzyMatches(query, names)

	inContains := make(map[string]bool, len(contains))
	for _, name := range contains {
		inContains[name] = true
	}

	if len(contains) > maxContainsMatches {
		contains = contains[:maxContainsMatches]
	}
	candidates = append(candidates, contains...)
	for _, name := range fuzzyNames {
		if !inContains[name] {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	confident = len(inContains) > 0 || bestFuzzy >= fuzzyConfidenceThreshold
	return candidates, confident
}

// rewriteAlias replaces the query with a canonical phrase when an alias key is
// a case-insensitive substring of it. Keys are scanned longest first so that
// "beef mince" wins over "mince".
func rewriteAlias(query string, tables *Tables) string {
	lower := strings.ToLower(query)
	for _, alias := range tables.aliasKeys {
		if strings.Contains(lower, strings.ToLower(alias)) {
			return tables.Aliases[alias]
		}
	}
	return query
}

// containsMatches scores every name by token overlap with the query and
// returns the positive scorers, best first, shorter names winning ties.
func containsMatches(query string, names []string) []string {
	queryLower := strings.ToLower(query)
	queryWords := tokens(queryLower)

	type scored struct {
		name  string
		score int
	}
	var matches []scored
	for _, name := range names {
		if score := wordMatchScore(queryLower, queryWords, name); score > 0 {
			matches = append(matches, scored{name, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return len(matches[i].name) < len(matches[j].name)
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// wordMatchScore awards +2 per query token contained in the name, +2 per name
// token contained in the query, and +5 when the name starts with the query's
// first token.
func wordMatchScore(queryLower string, queryWords []string, name string) int {
	nameLower := strings.ToLower(name)
	nameWords := tokens(strings.ReplaceAll(nameLower, ",", ""))

	score := 0
	for _, qw := range queryWords {
		if strings.Contains(nameLower, qw) {
			score += 2
		}
	}
	for _, nw := range nameWords {
		if strings.Contains(queryLower, nw) {
			score += 2
		}
	}
	if len(queryWords) > 0 && strings.HasPrefix(nameLower, queryWords[0]) {
		score += 5
	}
	return score
}

// fuzzyMatches ranks all names by weighted lexical similarity and keeps the
// top candidates at or above the cutoff. Also reports the single best score.
func fuzzyMatches(query string, names []string) ([]string, int) {
	type scored struct {
		name  string
		score int
	}
	var matches []scored
	best := 0
	for _, name := range names {
		score := fuzzy.WRatio(query, name)
		if score > best {
			best = score
		}
		if score >= fuzzyScoreCutoff {
			matches = append(matches, scored{name, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxFuzzyMatches {
		matches = matches[:maxFuzzyMatches]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out, best
}

// tokens splits on whitespace and keeps words longer than minTokenLength.
func tokens(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) > minTokenLength {
			out = append(out, w)
		}
	}
	return out
}
