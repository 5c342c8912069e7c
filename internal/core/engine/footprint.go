package engine

import (
	"math"
)

// kJPerKcal converts kilojoules to kilocalories.
const kJPerKcal = 4.184

// Rating bands for CO2 per serving (kg CO2e). Lower bound inclusive.
var ratingBands = []struct {
	upperBound float64
	rating     Rating
}{
	{0.4, Rating{Label: "Very Low", Color: "#4CAF50", Emoji: "🟢"}},
	{1.0, Rating{Label: "Low", Color: "#4CAF50", Emoji: "🟢"}},
	{1.8, Rating{Label: "Medium", Color: "#FFC107", Emoji: "🟡"}},
	{2.5, Rating{Label: "High", Color: "#f44336", Emoji: "🔴"}},
}

var ratingVeryHigh = Rating{Label: "Very High", Color: "#f44336", Emoji: "🔴"}

// ClassifyRating maps CO2 per serving onto its qualitative band. Recomputed
// from the value every time; never cached alongside it.
func ClassifyRating(co2PerServing float64) Rating {
	for _, band := range ratingBands {
		if co2PerServing < band.upperBound {
			return band.rating
		}
	}
	return ratingVeryHigh
}

// perServing divides a total across servings, passing the total through
// unchanged when servings is zero (single-batch case, not an error).
func perServing(total, servings float64) float64 {
	if servings > 0 {
		return total / servings
	}
	return total
}

func round0(v float64) float64 {
	return math.Round(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func roundNutrition(n Nutrition) Nutrition {
	return Nutrition{
		Kcal:    round0(n.Kcal),
		Fat:     round1(n.Fat),
		Carbs:   round1(n.Carbs),
		Protein: round1(n.Protein),
	}
}
