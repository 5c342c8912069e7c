package api

import (
	"context"
	"net/http"
	"time"

	"mealprint/internal/api/handlers/footprint"
	"mealprint/internal/api/handlers/health"
	"mealprint/internal/api/middleware"
	"mealprint/internal/core/cache"
	"mealprint/internal/core/climate"
	"mealprint/internal/core/engine"
	"mealprint/internal/infrastructure/config"
	"mealprint/internal/infrastructure/storage"
	"mealprint/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 30 * time.Second
	// request body limit (1MB); ingredient blocks are small
	maxBodySize = 1 << 20
)

// SetupRouter wires the HTTP surface around the footprint engine.
func SetupRouter(cfg *config.Config, engineSvc *engine.Service, catalog *climate.Catalog, store *storage.Store, estimates *cache.RedisCache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// per-request timeout
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck(catalog))
	router.GET("/live", health.LivenessCheck)

	handler := footprint.NewHandler(engineSvc, catalog, store, estimates)

	api := router.Group("/api/v1")
	{
		footprintGroup := api.Group("/footprint")
		{
			// parse a raw block into candidates for manual review
			footprintGroup.POST("/parse", handler.HandleParse)

			// compute a footprint from reviewed ingredient rows
			footprintGroup.POST("/calculate", handler.HandleCalculate)

			// fully automatic: parse, auto-match and aggregate in one call
			footprintGroup.POST("/estimate", handler.HandleEstimate)
		}

		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("/search", handler.HandleCatalogSearch)
			catalogGroup.POST("/reload", handler.HandleCatalogReload)
		}

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("", handler.HandleSaveRecipe)
			recipeGroup.GET("", handler.HandleListRecipes)
			recipeGroup.GET("/:id", handler.HandleGetRecipe)
			recipeGroup.PUT("/:id", handler.HandleUpdateRecipe)
			recipeGroup.DELETE("/:id", handler.HandleDeleteRecipe)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int("catalog_size", catalog.Len()),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
