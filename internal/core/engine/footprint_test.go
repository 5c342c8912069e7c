package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		co2PerServing float64
		wantLabel     string
		wantColor     string
		wantEmoji     string
	}{
		{name: "zero", co2PerServing: 0, wantLabel: "Very Low", wantColor: "#4CAF50", wantEmoji: "🟢"},
		{name: "just under very low bound", co2PerServing: 0.39, wantLabel: "Very Low", wantColor: "#4CAF50", wantEmoji: "🟢"},
		{name: "lower bound inclusive low", co2PerServing: 0.4, wantLabel: "Low", wantColor: "#4CAF50", wantEmoji: "🟢"},
		{name: "just under medium bound", co2PerServing: 0.99, wantLabel: "Low", wantColor: "#4CAF50", wantEmoji: "🟢"},
		{name: "lower bound inclusive medium", co2PerServing: 1.0, wantLabel: "Medium", wantColor: "#FFC107", wantEmoji: "🟡"},
		{name: "lower bound inclusive high", co2PerServing: 1.8, wantLabel: "High", wantColor: "#f44336", wantEmoji: "🔴"},
		{name: "just under very high bound", co2PerServing: 2.49, wantLabel: "High", wantColor: "#f44336", wantEmoji: "🔴"},
		{name: "lower bound inclusive very high", co2PerServing: 2.5, wantLabel: "Very High", wantColor: "#f44336", wantEmoji: "🔴"},
		{name: "far above", co2PerServing: 12.0, wantLabel: "Very High", wantColor: "#f44336", wantEmoji: "🔴"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyRating(tt.co2PerServing)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantColor, got.Color)
			assert.Equal(t, tt.wantEmoji, got.Emoji)
		})
	}
}

func TestPerServing(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, perServing(6, 3), 1e-9)
	assert.InDelta(t, 5.46, perServing(5.46, 1), 1e-9)

	// servings of zero means single batch: totals pass through unchanged
	assert.InDelta(t, 6.0, perServing(6, 0), 1e-9)
}

func TestRounding(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.4, round1(5.44), 1e-9)
	assert.InDelta(t, 5.5, round1(5.46), 1e-9)
	assert.InDelta(t, 0.061, round3(0.0612), 1e-9)
	assert.InDelta(t, 0.062, round3(0.0617), 1e-9)

	n := roundNutrition(Nutrition{Kcal: 478.011, Fat: 40.04, Carbs: 0.26, Protein: 38.57})
	assert.InDelta(t, 478.0, n.Kcal, 1e-9)
	assert.InDelta(t, 40.0, n.Fat, 1e-9)
	assert.InDelta(t, 0.3, n.Carbs, 1e-9)
	assert.InDelta(t, 38.6, n.Protein, 1e-9)
}
