package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParser() *RegexParser {
	return NewRegexParser([]string{"g", "kg", "cup", "tbsp", "stk."})
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		line        string
		wantValue   float64
		wantUnit    string
		wantSurface string
	}{
		{name: "grams glued", line: "200g beef", wantValue: 200, wantUnit: "g", wantSurface: "200g"},
		{name: "grams spaced", line: "200 g beef", wantValue: 200, wantUnit: "g", wantSurface: "200 g"},
		{name: "decimal dot", line: "0.5 kg flour", wantValue: 0.5, wantUnit: "kg", wantSurface: "0.5 kg"},
		{name: "decimal comma", line: "1,5 kg flour", wantValue: 1.5, wantUnit: "kg", wantSurface: "1,5 kg"},
		{name: "simple fraction", line: "3/4 cup sugar", wantValue: 0.75, wantUnit: "cup", wantSurface: "3/4 cup"},
		{name: "mixed fraction", line: "1 1/2 cup milk", wantValue: 1.5, wantUnit: "cup", wantSurface: "1 1/2 cup"},
		{name: "trailing dot unit", line: "2 stk. agurk", wantValue: 2, wantUnit: "stk", wantSurface: "2 stk."},
		{name: "unknown word is no unit", line: "2 onions", wantValue: 2, wantUnit: Dimensionless, wantSurface: "2"},
		{name: "bare number", line: "3 eggs", wantValue: 3, wantUnit: Dimensionless, wantSurface: "3"},
	}

	p := testParser()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := p.Parse(tt.line)
			require.NotEmpty(t, got)
			assert.InDelta(t, tt.wantValue, got[0].Value, 1e-9)
			assert.Equal(t, tt.wantUnit, got[0].Unit)
			assert.Equal(t, tt.wantSurface, got[0].Surface)
		})
	}
}

func TestParseNoQuantity(t *testing.T) {
	t.Parallel()

	p := testParser()
	assert.Nil(t, p.Parse("salt to taste"))
	assert.Nil(t, p.Parse("fresh basil"))
	assert.Nil(t, p.Parse(""))
}

func TestParseMultipleQuantities(t *testing.T) {
	t.Parallel()

	p := testParser()
	got := p.Parse("200g beef and 100g pork")
	require.Len(t, got, 2)
	assert.InDelta(t, 200.0, got[0].Value, 1e-9)
	assert.InDelta(t, 100.0, got[1].Value, 1e-9)
	assert.Equal(t, "g", got[0].Unit)
	assert.Equal(t, "g", got[1].Unit)
}

func TestParseUnitCaseInsensitive(t *testing.T) {
	t.Parallel()

	p := testParser()
	got := p.Parse("1 KG potatoes")
	require.NotEmpty(t, got)
	assert.Equal(t, "kg", got[0].Unit)
	assert.Equal(t, "1 KG", got[0].Surface)
}
