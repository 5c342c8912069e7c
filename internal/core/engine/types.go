package engine

// SourceNotFound tags a resolved ingredient whose name had no climate record.
const SourceNotFound = "not_found"

// ParsedLine is the parse result for one ingredient line. It is produced once
// and never mutated; candidate selection happens downstream.
type ParsedLine struct {
	OriginalLine string   `json:"original_line"`
	Amount       float64  `json:"amount"`
	Unit         string   `json:"unit"`
	Query        string   `json:"query"`
	Candidates   []string `json:"candidates"`
	Confident    bool     `json:"confident"`
}

// MatchedIngredient is a parsed line with a chosen climate-database name,
// either picked automatically or confirmed by a reviewer.
type MatchedIngredient struct {
	OriginalLine string  `json:"original_line"`
	Item         string  `json:"item"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Confident    bool    `json:"confident"`
}

// ResolvedIngredient is the final per-ingredient result: weight in grams and
// CO2 contribution with provenance. Edits replace the whole set, rows are
// never patched.
type ResolvedIngredient struct {
	OriginalLine string  `json:"original_line"`
	Item         string  `json:"item"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Grams        float64 `json:"grams"`
	CO2          float64 `json:"co2"`
	SourceDB     string  `json:"source_db"`
}

// Nutrition holds summed nutrition values (kcal plus grams of macros).
type Nutrition struct {
	Kcal    float64 `json:"kcal"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
}

// Rating is the qualitative footprint band. Always derived from
// co2_per_serving, never stored independently.
type Rating struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// Footprint is the aggregate result for a whole recipe.
type Footprint struct {
	TotalCO2            float64              `json:"total_co2"`
	CO2PerServing       float64              `json:"co2_per_serving"`
	Rating              Rating               `json:"rating"`
	Nutrition           Nutrition            `json:"nutrition"`
	NutritionPerServing Nutrition            `json:"nutrition_per_serving"`
	Ingredients         []ResolvedIngredient `json:"ingredients"`
}
