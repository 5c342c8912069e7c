package footprint

import (
	"strings"

	"mealprint/internal/core/cache"
	"mealprint/internal/core/climate"
	"mealprint/internal/core/engine"
	"mealprint/internal/infrastructure/storage"
)

// Handler serves the footprint endpoints.
type Handler struct {
	engine    *engine.Service
	catalog   *climate.Catalog
	store     *storage.Store
	estimates *cache.RedisCache
}

// NewHandler creates the footprint handler.
func NewHandler(engineSvc *engine.Service, catalog *climate.Catalog, store *storage.Store, estimates *cache.RedisCache) *Handler {
	return &Handler{
		engine:    engineSvc,
		catalog:   catalog,
		store:     store,
		estimates: estimates,
	}
}

// cleanBlock drops comment lines before the block reaches the engine. The
// engine itself only skips empty lines.
func cleanBlock(block string) string {
	lines := strings.Split(block, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
