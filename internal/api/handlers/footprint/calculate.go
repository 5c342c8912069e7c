package footprint

import (
	"encoding/json"
	"net/http"

	"mealprint/internal/core/engine"
	"mealprint/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IngredientInput is one reviewed ingredient row: the chosen catalog name
// plus the parsed amount and unit.
type IngredientInput struct {
	OriginalLine string  `json:"original_line"`
	Item         string  `json:"item" binding:"required"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

// CalculateRequest carries reviewed ingredient rows and a servings count.
type CalculateRequest struct {
	Ingredients []IngredientInput `json:"ingredients" binding:"required"`
	Servings    float64           `json:"servings"`
}

// EstimateRequest carries a raw block for fully automatic matching.
type EstimateRequest struct {
	Ingredients string  `json:"ingredients" binding:"required"`
	Servings    float64 `json:"servings"`
}

// EstimateResponse is a footprint plus the auto-match trust signal.
type EstimateResponse struct {
	Footprint       engine.Footprint `json:"footprint"`
	ConfidenceRatio float64          `json:"confidence_ratio"`
	CacheHit        bool             `json:"cache_hit,omitempty"`
}

// HandleCalculate computes the footprint for reviewer-confirmed ingredients.
func (h *Handler) HandleCalculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}
	if err := validateCalculate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	result := h.engine.ComputeFootprint(toMatched(req.Ingredients), req.Servings)

	common.LogInfo("Computed footprint",
		zap.Int("ingredients", len(result.Ingredients)),
		zap.Float64("total_co2", result.TotalCO2),
		zap.String("rating", result.Rating.Label),
		zap.String("request_id", c.GetHeader("X-Request-ID")))

	c.JSON(http.StatusOK, result)
}

// HandleEstimate runs the bulk path: parse, auto-select the top candidate per
// line and aggregate, with the whole response cached by content hash.
func (h *Handler) HandleEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}
	if req.Servings < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "servings must not be negative", "code": common.ErrCodeInvalidRequest})
		return
	}

	block := cleanBlock(req.Ingredients)
	ctx := c.Request.Context()

	if cached, ok := h.estimates.Get(ctx, block, req.Servings); ok {
		var resp EstimateResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			resp.CacheHit = true
			common.LogCacheHit("estimate", "")
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	result, ratio := h.engine.Estimate(ctx, block, req.Servings)
	resp := EstimateResponse{Footprint: result, ConfidenceRatio: ratio}

	if data, err := json.Marshal(resp); err == nil {
		if err := h.estimates.Set(ctx, block, req.Servings, data); err != nil {
			common.LogDebug("estimate cache set failed", zap.Error(err))
		}
	}

	common.LogInfo("Estimated footprint",
		zap.Int("ingredients", len(result.Ingredients)),
		zap.Float64("total_co2", result.TotalCO2),
		zap.Float64("confidence_ratio", ratio),
		zap.String("request_id", c.GetHeader("X-Request-ID")))

	c.JSON(http.StatusOK, resp)
}

func validateCalculate(req *CalculateRequest) error {
	if len(req.Ingredients) == 0 {
		return common.NewValidationError("at least one ingredient is required")
	}
	if req.Servings < 0 {
		return common.NewValidationError("servings must not be negative")
	}
	for _, ing := range req.Ingredients {
		if ing.Amount < 0 {
			return common.NewValidationError("ingredient amount must not be negative")
		}
	}
	return nil
}

func toMatched(inputs []IngredientInput) []engine.MatchedIngredient {
	matched := make([]engine.MatchedIngredient, len(inputs))
	for i, in := range inputs {
		matched[i] = engine.MatchedIngredient{
			OriginalLine: in.OriginalLine,
			Item:         in.Item,
			Amount:       in.Amount,
			Unit:         in.Unit,
		}
	}
	return matched
}
