package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"mealprint/internal/core/climate"
	"mealprint/internal/infrastructure/storage"
	"mealprint/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// sourceSpec binds a dataset name to its confidence tier and CSV column layout.
type sourceSpec struct {
	tier    climate.Tier
	columns columnMap
}

// columnMap names the CSV headers a source uses for each record field. An
// empty header means the source does not carry that field.
type columnMap struct {
	nameEN      string
	nameDK      string
	nameFR      string
	co2         string
	sourceID    string
	category    string
	subcategory string
	energyKJ    string
	fat         string
	carbs       string
	protein     string
}

var sources = map[string]sourceSpec{
	// Den Store Klimadatabase: primary source, only one with nutrition
	"danish": {
		tier: climate.TierHighest,
		columns: columnMap{
			nameEN:      "Name",
			nameDK:      "Navn",
			co2:         "Total kg CO2-eq/kg",
			sourceID:    "ID_Ra",
			category:    "Category",
			subcategory: "DSK Kategori",
			energyKJ:    "Energy (KJ/100 g)",
			fat:         "Fat (g/100 g)",
			carbs:       "Carbohydrate (g/100 g)",
			protein:     "Protein (g/100 g)",
		},
	},
	// Agribalyse 3.2: CO2 only, no nutrition
	"agribalyse": {
		tier: climate.TierHigh,
		columns: columnMap{
			nameEN:      "LCI Name",
			nameFR:      "Nom du Produit en Français",
			co2:         "kg CO2 eq/kg de produit",
			sourceID:    "Code AGB",
			category:    "Groupe d'aliment",
			subcategory: "Sous-groupe d'aliment",
		},
	},
	// HESTIA global dataset
	"hestia": {
		tier: climate.TierMedium,
		columns: columnMap{
			nameEN:   "Name",
			co2:      "kg CO2-eq/kg",
			sourceID: "ID",
			category: "Category",
		},
	},
}

func main() {
	var (
		dbPath   = flag.String("db", "mealprint.db", "path to the sqlite database")
		source   = flag.String("source", "", "dataset to import: danish, agribalyse or hestia")
		file     = flag.String("file", "", "CSV file path or http(s) URL")
		dryRun   = flag.Bool("dry-run", false, "parse and report without writing to the database")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	if err := common.InitLogger(*logLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	spec, ok := sources[*source]
	if !ok {
		common.LogFatal("Unknown source", zap.String("source", *source))
	}
	if *file == "" {
		common.LogFatal("A -file path or URL is required")
	}

	reader, closer, err := openInput(*file)
	if err != nil {
		common.LogFatal("Failed to open input", zap.Error(err), zap.String("file", *file))
	}
	defer closer()

	records, skipped, err := parseCSV(reader, *source, spec)
	if err != nil {
		common.LogFatal("Failed to parse CSV", zap.Error(err), zap.String("file", *file))
	}

	common.LogInfo("Parsed dataset",
		zap.String("source", *source),
		zap.String("confidence", string(spec.tier)),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
	)

	if *dryRun {
		for i, rec := range records {
			if i >= 3 {
				break
			}
			common.LogInfo("sample record",
				zap.String("name", rec.DisplayName()),
				zap.Float64("co2_per_kg", rec.CO2PerKg),
				zap.String("category", rec.Category),
			)
		}
		common.LogInfo("Dry run complete, nothing written")
		return
	}

	store, err := storage.NewStore(*dbPath)
	if err != nil {
		common.LogFatal("Failed to open store", zap.Error(err), zap.String("db", *dbPath))
	}
	defer store.Close()

	if err := store.ReplaceClimateSource(*source, records); err != nil {
		common.LogFatal("Import failed", zap.Error(err), zap.String("source", *source))
	}

	common.LogInfo("Import complete",
		zap.String("source", *source),
		zap.Int("records", len(records)),
		zap.String("db", *dbPath),
	)
}

// openInput returns a reader over a local file or a downloaded URL body.
func openInput(location string) (io.Reader, func(), error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		client := resty.New().SetTimeout(2 * time.Minute)
		resp, err := client.R().Get(location)
		if err != nil {
			return nil, nil, err
		}
		if resp.StatusCode() != 200 {
			return nil, nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode(), location)
		}
		return strings.NewReader(string(resp.Body())), func() {}, nil
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func parseCSV(r io.Reader, sourceDB string, spec sourceSpec) ([]climate.Record, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		// some exports carry line breaks inside header cells
		index[strings.Join(strings.Fields(col), " ")] = i
	}

	if _, ok := index[spec.columns.co2]; !ok {
		return nil, 0, fmt.Errorf("missing required column %q", spec.columns.co2)
	}

	var records []climate.Record
	skipped := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		cell := func(name string) string {
			if name == "" {
				return ""
			}
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		co2, err := parseFloat(cell(spec.columns.co2))
		if err != nil || co2 <= 0 {
			skipped++
			continue
		}

		rec := climate.Record{
			NameEN:      cell(spec.columns.nameEN),
			NameDK:      cell(spec.columns.nameDK),
			NameFR:      cell(spec.columns.nameFR),
			CO2PerKg:    co2,
			SourceDB:    sourceDB,
			SourceID:    cell(spec.columns.sourceID),
			Confidence:  spec.tier,
			Category:    cell(spec.columns.category),
			Subcategory: cell(spec.columns.subcategory),
		}
		if rec.NameEN == "" && rec.NameDK == "" && rec.NameFR == "" {
			skipped++
			continue
		}

		rec.EnergyKJ = optionalFloat(cell(spec.columns.energyKJ))
		rec.FatG = optionalFloat(cell(spec.columns.fat))
		rec.CarbsG = optionalFloat(cell(spec.columns.carbs))
		rec.ProteinG = optionalFloat(cell(spec.columns.protein))

		records = append(records, rec)
	}

	return records, skipped, nil
}

// parseFloat accepts both dot and comma decimal separators; the French export
// uses commas.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func optionalFloat(s string) float64 {
	v, err := parseFloat(s)
	if err != nil {
		return 0
	}
	return v
}
