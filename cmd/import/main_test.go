package main

import (
	"strings"
	"testing"

	"mealprint/internal/core/climate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVDanish(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Name,Navn,Total kg CO2-eq/kg,ID_Ra,Category,DSK Kategori,Energy (KJ/100 g),Fat (g/100 g),Carbohydrate (g/100 g),Protein (g/100 g)",
		"\"Beef, minced\",Hakket oksekød,27,Ra00123,Meat,Kød,1000,20,0,19",
		"Spinach,Spinat,\"1,98\",Ra00456,Vegetables,Grønt,97,0.4,1.4,2.9",
		"Zero impact,,0,Ra00789,Meat,Kød,,,,",
		"Negative impact,,-1.2,Ra00790,Meat,Kød,,,,",
		"Not a number,,n/a,Ra00791,Meat,Kød,,,,",
		",,4.2,Ra00792,Meat,Kød,,,,",
	}, "\n")

	records, skipped, err := parseCSV(strings.NewReader(input), "danish", sources["danish"])
	require.NoError(t, err)

	// zero, negative, unparseable and nameless rows are all skipped
	require.Len(t, records, 2)
	assert.Equal(t, 4, skipped)

	beef := records[0]
	assert.Equal(t, "Beef, minced", beef.NameEN)
	assert.Equal(t, "Hakket oksekød", beef.NameDK)
	assert.InDelta(t, 27.0, beef.CO2PerKg, 1e-9)
	assert.Equal(t, "danish", beef.SourceDB)
	assert.Equal(t, climate.TierHighest, beef.Confidence)
	assert.Equal(t, "Ra00123", beef.SourceID)
	assert.InDelta(t, 1000.0, beef.EnergyKJ, 1e-9)
	assert.InDelta(t, 20.0, beef.FatG, 1e-9)
	assert.InDelta(t, 19.0, beef.ProteinG, 1e-9)

	// comma decimal separator accepted
	assert.InDelta(t, 1.98, records[1].CO2PerKg, 1e-9)
}

func TestParseCSVAgribalyse(t *testing.T) {
	t.Parallel()

	// the Agribalyse export carries a line break inside the code header cell
	input := strings.Join([]string{
		"Nom du Produit en Français,LCI Name,kg CO2 eq/kg de produit,\"Code\nAGB\",Groupe d'aliment,Sous-groupe d'aliment",
		"Bœuf haché,\"Beef, minced\",\"30,1\",20134,viandes,viandes crues",
	}, "\n")

	records, skipped, err := parseCSV(strings.NewReader(input), "agribalyse", sources["agribalyse"])
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, skipped)

	rec := records[0]
	assert.Equal(t, "Bœuf haché", rec.NameFR)
	assert.Equal(t, "Beef, minced", rec.NameEN)
	assert.InDelta(t, 30.1, rec.CO2PerKg, 1e-9)
	assert.Equal(t, "20134", rec.SourceID)
	assert.Equal(t, climate.TierHigh, rec.Confidence)
	assert.InDelta(t, 0.0, rec.EnergyKJ, 1e-9)
}

func TestParseCSVMissingCO2Column(t *testing.T) {
	t.Parallel()

	input := "Name,Navn\nBeef,Oksekød\n"
	_, _, err := parseCSV(strings.NewReader(input), "danish", sources["danish"])
	assert.Error(t, err)
}
