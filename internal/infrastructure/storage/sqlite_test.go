package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"mealprint/internal/core/climate"
	"mealprint/internal/core/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecipe(id string) *Recipe {
	return &Recipe{
		ID:            id,
		Name:          "Spaghetti bolognese",
		TotalCO2:      5.46,
		Servings:      2,
		CO2PerServing: 2.73,
		Source:        "https://example.com/bolognese",
		Rating:        engine.Rating{Label: "Very High", Color: "#f44336", Emoji: "🔴"},
		Nutrition:     engine.Nutrition{Kcal: 478, Fat: 40, Protein: 38},
		Ingredients: []engine.ResolvedIngredient{
			{OriginalLine: "200g beef mince", Item: "Beef, minced", Amount: 200, Unit: "g", Grams: 200, CO2: 5.4, SourceDB: "danish"},
			{OriginalLine: "1 handful spinach", Item: "Spinach", Amount: 30, Unit: "g", Grams: 30, CO2: 0.06, SourceDB: "danish"},
		},
		Tags: []string{"dinner", "pasta"},
	}
}

func TestReplaceClimateSource(t *testing.T) {
	t.Parallel()

	store := testStore(t)

	require.NoError(t, store.ReplaceClimateSource("danish", []climate.Record{
		{NameEN: "Beef, minced", NameDK: "Hakket oksekød", CO2PerKg: 27, SourceDB: "danish", Confidence: climate.TierHighest, EnergyKJ: 1000, FatG: 20, ProteinG: 19},
		{NameEN: "Spinach", CO2PerKg: 2.0, SourceDB: "danish", Confidence: climate.TierHighest},
	}))
	require.NoError(t, store.ReplaceClimateSource("agribalyse", []climate.Record{
		{NameEN: "Beef", NameFR: "Bœuf haché", CO2PerKg: 30, SourceDB: "agribalyse", Confidence: climate.TierHigh},
	}))

	records, err := store.LoadClimateIngredients()
	require.NoError(t, err)
	require.Len(t, records, 3)

	beef := records[0]
	assert.Equal(t, "Beef, minced", beef.NameEN)
	assert.Equal(t, "Hakket oksekød", beef.NameDK)
	assert.InDelta(t, 27.0, beef.CO2PerKg, 1e-9)
	assert.Equal(t, climate.TierHighest, beef.Confidence)
	assert.InDelta(t, 1000.0, beef.EnergyKJ, 1e-9)

	// absent nutrition round-trips as zero
	assert.InDelta(t, 0.0, records[1].EnergyKJ, 1e-9)

	// re-importing a source replaces it instead of appending
	require.NoError(t, store.ReplaceClimateSource("danish", []climate.Record{
		{NameEN: "Lentils", CO2PerKg: 0.9, SourceDB: "danish", Confidence: climate.TierHighest},
	}))

	records, err = store.LoadClimateIngredients()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestRecipeLifecycle(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	recipe := testRecipe("recipe-1")

	require.NoError(t, store.SaveRecipe(recipe))

	got, err := store.GetRecipe("recipe-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Spaghetti bolognese", got.Name)
	assert.InDelta(t, 5.46, got.TotalCO2, 1e-9)
	assert.Equal(t, "Very High", got.Rating.Label)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "Beef, minced", got.Ingredients[0].Item)
	assert.Equal(t, "danish", got.Ingredients[0].SourceDB)
	assert.Equal(t, []string{"dinner", "pasta"}, got.Tags)

	// update replaces header and children wholesale
	updated := testRecipe("recipe-1")
	updated.Name = "Spinach bolognese"
	updated.Ingredients = updated.Ingredients[1:]
	updated.Tags = []string{"dinner"}
	require.NoError(t, store.UpdateRecipe(updated))

	got, err = store.GetRecipe("recipe-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Spinach bolognese", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Spinach", got.Ingredients[0].Item)
	assert.Equal(t, []string{"dinner"}, got.Tags)

	require.NoError(t, store.DeleteRecipe("recipe-1"))

	got, err = store.GetRecipe("recipe-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMissingRecipe(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	err := store.UpdateRecipe(testRecipe("nope"))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteMissingRecipe(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	err := store.DeleteRecipe("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRecipes(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	require.NoError(t, store.SaveRecipe(testRecipe("recipe-1")))
	require.NoError(t, store.SaveRecipe(testRecipe("recipe-2")))
	require.NoError(t, store.SaveRecipe(testRecipe("recipe-3")))

	all, err := store.ListRecipes(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := store.ListRecipes(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
