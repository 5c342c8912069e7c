package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var matcherNames = []string{
	"Beef, minced",
	"Pork, minced",
	"Chicken, breast",
	"Chicken, whole",
	"Spring onion",
	"Spinach",
	"Tomatoes, canned",
}

func TestMatchCandidatesTokenOverlap(t *testing.T) {
	t.Parallel()

	candidates, confident := MatchCandidates("chicken breast", matcherNames, testTables())

	require.NotEmpty(t, candidates)
	assert.Equal(t, "Chicken, breast", candidates[0])
	assert.True(t, confident)
	assert.Contains(t, candidates, "Chicken, whole")
}

func TestMatchCandidatesAliasLongestFirst(t *testing.T) {
	t.Parallel()

	// "beef mince" must be rewritten by its own alias, not the shorter
	// "mince" key that is also a substring
	candidates, confident := MatchCandidates("beef mince", matcherNames, testTables())

	require.NotEmpty(t, candidates)
	assert.Equal(t, "Beef, minced", candidates[0])
	assert.True(t, confident)
}

func TestMatchCandidatesShortAlias(t *testing.T) {
	t.Parallel()

	candidates, confident := MatchCandidates("mince", matcherNames, testTables())

	require.NotEmpty(t, candidates)
	assert.Equal(t, "Pork, minced", candidates[0])
	assert.True(t, confident)
}

func TestMatchCandidatesNoMatch(t *testing.T) {
	t.Parallel()

	_, confident := MatchCandidates("xyzzyqwrt", matcherNames, testTables())
	assert.False(t, confident)
}

func TestMatchCandidatesDeterministic(t *testing.T) {
	t.Parallel()

	first, confFirst := MatchCandidates("spring onion", matcherNames, testTables())
	second, confSecond := MatchCandidates("spring onion", matcherNames, testTables())

	assert.Equal(t, first, second)
	assert.Equal(t, confFirst, confSecond)
}

func TestMatchCandidatesCapped(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		names = append(names, fmt.Sprintf("Tomato, variety %02d", i))
	}

	candidates, confident := MatchCandidates("tomato", names, testTables())

	assert.True(t, confident)
	assert.LessOrEqual(t, len(candidates), 15)
	assert.NotEmpty(t, candidates)
}

func TestMatchCandidatesNoDuplicates(t *testing.T) {
	t.Parallel()

	candidates, _ := MatchCandidates("spinach", matcherNames, testTables())

	seen := make(map[string]bool)
	for _, name := range candidates {
		assert.False(t, seen[name], "duplicate candidate %q", name)
		seen[name] = true
	}
}
