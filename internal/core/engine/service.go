package engine

import (
	"context"
	"encoding/json"
	"strings"

	"mealprint/internal/core/cache"
	"mealprint/internal/core/climate"
	"mealprint/internal/core/quantity"
	"mealprint/internal/pkg/common"

	"go.uber.org/zap"
)

// Service runs the full resolution pipeline: line parsing, candidate
// matching, weight conversion, climate lookup and aggregation. Every call is
// a pure function of its inputs over the current catalog snapshot, so
// independent recipes may be processed concurrently.
type Service struct {
	tables  *Tables
	parser  *LineParser
	catalog *climate.Catalog
	cache   *cache.Manager
}

// NewService creates the footprint engine service.
func NewService(tables *Tables, quantities quantity.Parser, catalog *climate.Catalog, cacheManager *cache.Manager) *Service {
	return &Service{
		tables:  tables,
		parser:  NewLineParser(tables, quantities),
		catalog: catalog,
		cache:   cacheManager,
	}
}

// Tables exposes the loaded conversion tables.
func (s *Service) Tables() *Tables {
	return s.tables
}

// ReloadCatalog swaps the catalog snapshot and drops every memoized match
// result, which was computed against the replaced snapshot. In-flight
// computations keep the snapshot they started with.
func (s *Service) ReloadCatalog(records []climate.Record) {
	s.catalog.Reload(records)
	s.cache.Flush()
}

// ParseBlock parses a newline-separated ingredient block and attaches match
// candidates to every line. Empty lines are skipped.
func (s *Service) ParseBlock(ctx context.Context, block string) []ParsedLine {
	lines := strings.Split(block, "\n")
	parsed := make([]ParsedLine, 0, len(lines))

	for _, line := range lines {
		p, ok := s.parser.ParseLine(line)
		if !ok {
			continue
		}
		p.Candidates, p.Confident = s.Match(ctx, p.Query)
		parsed = append(parsed, p)
	}

	return parsed
}

// matchResult is the cached form of a match outcome.
type matchResult struct {
	Candidates []string `json:"candidates"`
	Confident  bool     `json:"confident"`
}

// Match resolves a search query to ordered catalog-name candidates, with the
// per-query result memoized across lines and recipes.
func (s *Service) Match(ctx context.Context, query string) ([]string, bool) {
	if cached, ok := s.cache.Get(ctx, "match", query); ok {
		var result matchResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result.Candidates, result.Confident
		}
	}

	candidates, confident := MatchCandidates(query, s.catalog.Names(), s.tables)

	if data, err := json.Marshal(matchResult{Candidates: candidates, Confident: confident}); err == nil {
		if err := s.cache.Set(ctx, "match", query, string(data)); err != nil {
			common.LogDebug("match cache set failed", zap.Error(err))
		}
	}

	return candidates, confident
}

// AutoMatch parses a block and selects the top candidate for every line that
// has one. Lines without candidates are left out; callers wanting them must
// go through ParseBlock and review manually.
func (s *Service) AutoMatch(ctx context.Context, block string) []MatchedIngredient {
	parsed := s.ParseBlock(ctx, block)

	matched := make([]MatchedIngredient, 0, len(parsed))
	for _, p := range parsed {
		if len(p.Candidates) == 0 {
			continue
		}
		matched = append(matched, MatchedIngredient{
			OriginalLine: p.OriginalLine,
			Item:         p.Candidates[0],
			Amount:       p.Amount,
			Unit:         p.Unit,
			Confident:    p.Confident,
		})
	}

	return matched
}

// ComputeFootprint resolves every matched ingredient against the catalog and
// aggregates recipe totals, per-serving values and the rating band. A name
// missing from the catalog or an unconvertible unit contributes zero instead
// of failing the recipe.
func (s *Service) ComputeFootprint(matched []MatchedIngredient, servings float64) Footprint {
	resolved := make([]ResolvedIngredient, 0, len(matched))
	totalCO2 := 0.0
	var totals Nutrition

	for _, ing := range matched {
		rawGrams := s.tables.Grams(ing.Amount, ing.Unit, ing.Item)
		grams := round1(rawGrams)

		co2 := 0.0
		sourceDB := SourceNotFound
		if rec, found := s.catalog.Resolve(ing.Item); found {
			// CO2 from the unrounded weight; only the reported values
			// are rounded
			co2 = round3(rawGrams / 1000 * rec.CO2PerKg)
			sourceDB = rec.SourceDB

			// nutrition values are stored per 100 g
			if rec.EnergyKJ > 0 {
				totals.Kcal += grams / 100 * (rec.EnergyKJ / kJPerKcal)
			}
			totals.Fat += grams / 100 * rec.FatG
			totals.Carbs += grams / 100 * rec.CarbsG
			totals.Protein += grams / 100 * rec.ProteinG
		}

		totalCO2 += co2
		resolved = append(resolved, ResolvedIngredient{
			OriginalLine: ing.OriginalLine,
			Item:         ing.Item,
			Amount:       ing.Amount,
			Unit:         s.tables.NormalizeUnit(ing.Unit),
			Grams:        grams,
			CO2:          co2,
			SourceDB:     sourceDB,
		})
	}

	co2PerServing := perServing(totalCO2, servings)

	return Footprint{
		TotalCO2:      round3(totalCO2),
		CO2PerServing: round3(co2PerServing),
		Rating:        ClassifyRating(co2PerServing),
		Nutrition:     roundNutrition(totals),
		NutritionPerServing: roundNutrition(Nutrition{
			Kcal:    perServing(totals.Kcal, servings),
			Fat:     perServing(totals.Fat, servings),
			Carbs:   perServing(totals.Carbs, servings),
			Protein: perServing(totals.Protein, servings),
		}),
		Ingredients: resolved,
	}
}

// Estimate is the bulk path: auto-match the block and compute the footprint
// in one step. The second return value is the fraction of matched lines with
// a confident match, which bulk importers use to gate publication.
func (s *Service) Estimate(ctx context.Context, block string, servings float64) (Footprint, float64) {
	matched := s.AutoMatch(ctx, block)

	confident := 0
	for _, m := range matched {
		if m.Confident {
			confident++
		}
	}
	ratio := 0.0
	if len(matched) > 0 {
		ratio = float64(confident) / float64(len(matched))
	}

	return s.ComputeFootprint(matched, servings), ratio
}
