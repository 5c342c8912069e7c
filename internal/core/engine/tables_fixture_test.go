package engine

// testTables returns a small but realistic table fixture shared by the engine
// tests.
func testTables() *Tables {
	return NewTables(
		map[string]float64{
			"g":     1,
			"kg":    1000,
			"cup":   240,
			"piece": 100,
		},
		map[string]float64{
			"onion":        150,
			"spring onion": 15,
			"egg":          60,
		},
		map[string]string{
			"gram":          "g",
			"grams":         "g",
			"kilogram":      "kg",
			"cups":          "cup",
			"pieces":        "piece",
			"dimensionless": "piece",
		},
		map[string]string{
			"handful":   "30g",
			"handfuls":  "30g",
			"sprinkle":  "2g",
			"knivspids": "0.5g",
		},
		map[string]string{
			"beef mince": "Beef, minced",
			"mince":      "Pork, minced",
			"scallions":  "Spring onion",
		},
	)
}
