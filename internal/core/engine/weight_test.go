package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		amount     float64
		unit       string
		ingredient string
		want       float64
	}{
		{name: "grams pass through", amount: 200, unit: "g", ingredient: "Beef, minced", want: 200},
		{name: "kilograms scale", amount: 1.5, unit: "kg", ingredient: "Potatoes", want: 1500},
		{name: "cups", amount: 2, unit: "cup", ingredient: "Flour", want: 480},
		{name: "raw unit mapped first", amount: 250, unit: "grams", ingredient: "Sugar", want: 250},
		{name: "piece via keyword", amount: 2, unit: "piece", ingredient: "Red onion", want: 300},
		{name: "piece keyword case insensitive", amount: 1, unit: "piece", ingredient: "EGG, raw", want: 60},
		{name: "piece longest keyword wins", amount: 2, unit: "piece", ingredient: "spring onion", want: 30},
		{name: "piece fallback weight", amount: 3, unit: "piece", ingredient: "dragon fruit", want: 300},
		{name: "pieces plural mapped", amount: 2, unit: "pieces", ingredient: "onion", want: 300},
		{name: "unknown unit yields zero", amount: 5, unit: "splash", ingredient: "Milk", want: 0},
	}

	tables := testTables()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tables.Grams(tt.amount, tt.unit, tt.ingredient)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
