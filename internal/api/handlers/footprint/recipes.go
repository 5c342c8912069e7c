package footprint

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"mealprint/internal/infrastructure/storage"
	"mealprint/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipeRequest carries everything needed to compute and persist a recipe.
type RecipeRequest struct {
	Name                string            `json:"name" binding:"required"`
	Ingredients         []IngredientInput `json:"ingredients" binding:"required"`
	Servings            float64           `json:"servings"`
	Tags                []string          `json:"tags"`
	Source              string            `json:"source"`
	OriginalIngredients string            `json:"original_ingredients"`
}

// HandleSaveRecipe computes the footprint and stores the recipe.
func (h *Handler) HandleSaveRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}
	if err := validateCalculate(&CalculateRequest{Ingredients: req.Ingredients, Servings: req.Servings}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	recipe := h.buildRecipe(common.GenerateUUID(), &req)
	if err := h.store.SaveRecipe(recipe); err != nil {
		common.LogError("Failed to save recipe", zap.Error(err), zap.String("name", req.Name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe", "code": common.ErrCodeInternalError})
		return
	}

	common.LogInfo("Recipe saved",
		zap.String("id", recipe.ID),
		zap.String("name", recipe.Name),
		zap.Float64("total_co2", recipe.TotalCO2),
		zap.String("rating", recipe.Rating.Label))

	c.JSON(http.StatusCreated, recipe)
}

// HandleUpdateRecipe recomputes the footprint from the submitted ingredient
// set and replaces the stored recipe wholesale. Totals are never patched.
func (h *Handler) HandleUpdateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}
	if err := validateCalculate(&CalculateRequest{Ingredients: req.Ingredients, Servings: req.Servings}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	recipe := h.buildRecipe(c.Param("id"), &req)
	if err := h.store.UpdateRecipe(recipe); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found", "code": common.ErrCodeNotFound})
			return
		}
		common.LogError("Failed to update recipe", zap.Error(err), zap.String("id", recipe.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe", "code": common.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// HandleListRecipes returns saved recipes, newest first.
func (h *Handler) HandleListRecipes(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit", "code": common.ErrCodeInvalidRequest})
			return
		}
		limit = parsed
	}

	recipes, err := h.store.ListRecipes(limit)
	if err != nil {
		common.LogError("Failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes", "code": common.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

// HandleGetRecipe returns one recipe by ID.
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	recipe, err := h.store.GetRecipe(c.Param("id"))
	if err != nil {
		common.LogError("Failed to load recipe", zap.Error(err), zap.String("id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe", "code": common.ErrCodeInternalError})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found", "code": common.ErrCodeNotFound})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// HandleDeleteRecipe removes a recipe and its rows.
func (h *Handler) HandleDeleteRecipe(c *gin.Context) {
	if err := h.store.DeleteRecipe(c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found", "code": common.ErrCodeNotFound})
			return
		}
		common.LogError("Failed to delete recipe", zap.Error(err), zap.String("id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe", "code": common.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) buildRecipe(id string, req *RecipeRequest) *storage.Recipe {
	result := h.engine.ComputeFootprint(toMatched(req.Ingredients), req.Servings)

	return &storage.Recipe{
		ID:                  id,
		Name:                req.Name,
		TotalCO2:            result.TotalCO2,
		Servings:            req.Servings,
		CO2PerServing:       result.CO2PerServing,
		Source:              req.Source,
		OriginalIngredients: req.OriginalIngredients,
		Rating:              result.Rating,
		Nutrition:           result.Nutrition,
		Ingredients:         result.Ingredients,
		Tags:                req.Tags,
	}
}
