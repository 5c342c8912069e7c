package engine

import (
	"testing"

	"mealprint/internal/core/quantity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLineParser() *LineParser {
	tables := testTables()
	return NewLineParser(tables, quantity.NewRegexParser(tables.UnitVocabulary()))
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		line       string
		wantAmount float64
		wantUnit   string
		wantQuery  string
	}{
		{name: "grams glued", line: "200g beef mince", wantAmount: 200, wantUnit: "g", wantQuery: "beef mince"},
		{name: "unit map applied", line: "500 grams flour", wantAmount: 500, wantUnit: "g", wantQuery: "flour"},
		{name: "kilograms", line: "1.5 kg potatoes", wantAmount: 1.5, wantUnit: "kg", wantQuery: "potatoes"},
		{name: "bare count becomes piece", line: "2 onions", wantAmount: 2, wantUnit: "piece", wantQuery: "onions"},
		{name: "trailing qualifier dropped", line: "200g beef, or more to taste", wantAmount: 200, wantUnit: "g", wantQuery: "beef"},
		{name: "informal handful", line: "1 handful spinach", wantAmount: 30, wantUnit: "g", wantQuery: "spinach"},
		{name: "informal without number", line: "handful of rocket", wantAmount: 30, wantUnit: "g", wantQuery: "of rocket"},
		{name: "no quantity defaults to one piece", line: "fresh basil", wantAmount: 1, wantUnit: "piece", wantQuery: "fresh basil"},
		{name: "filler stripped", line: "salt to taste", wantAmount: 1, wantUnit: "piece", wantQuery: "salt"},
		{name: "pinch phrase stripped", line: "a pinch of saffron", wantAmount: 1, wantUnit: "piece", wantQuery: "saffron"},
	}

	p := testLineParser()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := p.ParseLine(tt.line)
			require.True(t, ok)
			assert.InDelta(t, tt.wantAmount, got.Amount, 1e-9)
			assert.Equal(t, tt.wantUnit, got.Unit)
			assert.Equal(t, tt.wantQuery, got.Query)
		})
	}
}

func TestParseLineSkipsEmpty(t *testing.T) {
	t.Parallel()

	p := testLineParser()
	_, ok := p.ParseLine("")
	assert.False(t, ok)
	_, ok = p.ParseLine("   ")
	assert.False(t, ok)
}

func TestSubstituteInformalUnitsLongestFirst(t *testing.T) {
	t.Parallel()

	// "handfuls" must win over its substring "handful"
	p := testLineParser()
	got, ok := p.ParseLine("2 handfuls of kale")
	require.True(t, ok)
	assert.InDelta(t, 30.0, got.Amount, 1e-9)
	assert.Equal(t, "g", got.Unit)
}
