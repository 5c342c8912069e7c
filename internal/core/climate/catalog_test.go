package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersHigherTier(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Record{
		{NameEN: "Beef", CO2PerKg: 30, SourceDB: "agribalyse", Confidence: TierHigh},
		{NameEN: "Beef", CO2PerKg: 27, SourceDB: "danish", Confidence: TierHighest},
		{NameEN: "Beef", CO2PerKg: 33, SourceDB: "hestia", Confidence: TierMedium},
	})

	rec, found := catalog.Resolve("Beef")
	require.True(t, found)
	assert.Equal(t, "danish", rec.SourceDB)
	assert.InDelta(t, 27.0, rec.CO2PerKg, 1e-9)
}

func TestResolveTieBreaksOnShorterName(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Record{
		{NameEN: "Milk, whole fat", NameDK: "Milk", CO2PerKg: 1.3, SourceDB: "danish", Confidence: TierHighest},
		{NameEN: "Milk", CO2PerKg: 1.1, SourceDB: "danish", Confidence: TierHighest},
	})

	rec, found := catalog.Resolve("Milk")
	require.True(t, found)
	assert.InDelta(t, 1.1, rec.CO2PerKg, 1e-9)
}

func TestResolveUnknownName(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Record{
		{NameEN: "Beef", CO2PerKg: 27, SourceDB: "danish", Confidence: TierHighest},
	})

	_, found := catalog.Resolve("Unicorn meat")
	assert.False(t, found)
}

func TestResolveByAnyLanguage(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Record{
		{NameEN: "Spinach", NameDK: "Spinat", NameFR: "Épinard", CO2PerKg: 2.0, SourceDB: "danish", Confidence: TierHighest},
	})

	for _, name := range []string{"Spinach", "Spinat", "Épinard"} {
		rec, found := catalog.Resolve(name)
		require.True(t, found, "name %q", name)
		assert.InDelta(t, 2.0, rec.CO2PerKg, 1e-9)
	}
}

func TestNamesDeduplicated(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Record{
		{NameEN: "Beef", CO2PerKg: 27, SourceDB: "danish", Confidence: TierHighest},
		{NameEN: "Beef", CO2PerKg: 30, SourceDB: "agribalyse", Confidence: TierHigh},
		{NameEN: "Spinach", NameDK: "Spinat", CO2PerKg: 2.0, SourceDB: "danish", Confidence: TierHighest},
	})

	assert.ElementsMatch(t, []string{"Beef", "Spinach", "Spinat"}, catalog.Names())
	assert.Equal(t, 3, catalog.Len())
}

func TestReloadReplacesSnapshot(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog([]Record{
		{NameEN: "Beef", CO2PerKg: 27, SourceDB: "danish", Confidence: TierHighest},
	})

	catalog.Reload([]Record{
		{NameEN: "Lentils", CO2PerKg: 0.9, SourceDB: "danish", Confidence: TierHighest},
	})

	_, found := catalog.Resolve("Beef")
	assert.False(t, found)

	rec, found := catalog.Resolve("Lentils")
	require.True(t, found)
	assert.InDelta(t, 0.9, rec.CO2PerKg, 1e-9)
	assert.Equal(t, 1, catalog.Len())
}

func TestDisplayNameFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Beef", Record{NameEN: "Beef", NameDK: "Oksekød"}.DisplayName())
	assert.Equal(t, "Oksekød", Record{NameDK: "Oksekød", NameFR: "Bœuf"}.DisplayName())
	assert.Equal(t, "Bœuf", Record{NameFR: "Bœuf"}.DisplayName())
}

func TestTierRankOrdering(t *testing.T) {
	t.Parallel()

	assert.Less(t, TierHighest.rank(), TierHigh.rank())
	assert.Less(t, TierHigh.rank(), TierMedium.rank())
	assert.Less(t, TierMedium.rank(), TierLow.rank())
	assert.Less(t, TierLow.rank(), Tier("made up").rank())
}
