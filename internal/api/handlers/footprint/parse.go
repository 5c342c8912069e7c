package footprint

import (
	"net/http"

	"mealprint/internal/core/engine"
	"mealprint/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseRequest carries a raw ingredient block for candidate matching.
type ParseRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
}

// ParseResponse returns one parsed entry per non-empty line.
type ParseResponse struct {
	Ingredients []engine.ParsedLine `json:"ingredients"`
}

// HandleParse parses an ingredient block and returns candidates for manual
// review. Nothing is persisted; the caller picks a candidate per line and
// calls the calculate endpoint.
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("Invalid parse request",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	parsed := h.engine.ParseBlock(c.Request.Context(), cleanBlock(req.Ingredients))

	common.LogInfo("Parsed ingredient block",
		zap.Int("lines", len(parsed)),
		zap.String("request_id", c.GetHeader("X-Request-ID")))

	c.JSON(http.StatusOK, ParseResponse{Ingredients: parsed})
}

// HandleCatalogSearch matches a single query against the catalog names, for
// the manual-review dropdown.
func (h *Handler) HandleCatalogSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required", "code": common.ErrCodeInvalidRequest})
		return
	}

	candidates, confident := h.engine.Match(c.Request.Context(), query)

	c.JSON(http.StatusOK, gin.H{
		"query":      query,
		"candidates": candidates,
		"confident":  confident,
	})
}

// HandleCatalogReload refreshes the catalog snapshot from the store and drops
// both caches, so no candidate list or estimate computed against the old
// snapshot is served afterward. In-flight computations keep the snapshot they
// started with.
func (h *Handler) HandleCatalogReload(c *gin.Context) {
	records, err := h.store.LoadClimateIngredients()
	if err != nil {
		common.LogError("Catalog reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload catalog", "code": common.ErrCodeInternalError})
		return
	}

	h.engine.ReloadCatalog(records)

	if err := h.estimates.Flush(c.Request.Context()); err != nil {
		common.LogWarn("estimate cache flush failed", zap.Error(err))
	}

	common.LogInfo("Catalog reloaded",
		zap.Int("records", len(records)),
		zap.Int("searchable_names", len(h.catalog.Names())))

	c.JSON(http.StatusOK, gin.H{
		"records":          len(records),
		"searchable_names": len(h.catalog.Names()),
	})
}
