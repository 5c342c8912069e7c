package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealprint/internal/api"
	"mealprint/internal/core/cache"
	"mealprint/internal/core/climate"
	"mealprint/internal/core/engine"
	"mealprint/internal/core/quantity"
	"mealprint/internal/infrastructure/config"
	"mealprint/internal/infrastructure/storage"
	"mealprint/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("starting application",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.Bool("debug", cfg.App.Debug),
	)

	store, err := storage.NewStore(cfg.Data.DBPath)
	if err != nil {
		common.LogFatal("Failed to open store", zap.Error(err), zap.String("db_path", cfg.Data.DBPath))
	}
	defer store.Close()

	records, err := store.LoadClimateIngredients()
	if err != nil {
		common.LogFatal("Failed to load climate data", zap.Error(err))
	}
	catalog := climate.NewCatalog(records)
	if catalog.Len() == 0 {
		common.LogWarn("Climate catalog is empty; run the importer before serving traffic",
			zap.String("db_path", cfg.Data.DBPath))
	}

	tables, err := engine.LoadTables(cfg.Data.UnitsPath, cfg.Data.AliasesPath)
	if err != nil {
		common.LogFatal("Failed to load conversion tables",
			zap.Error(err),
			zap.String("units_path", cfg.Data.UnitsPath),
			zap.String("aliases_path", cfg.Data.AliasesPath))
	}

	cacheManager := cache.NewManager(cfg)
	if cfg.Cache.Enabled && cacheManager == nil {
		common.LogFatal("Failed to initialize cache manager")
	}
	defer cacheManager.Close()

	engineSvc := engine.NewService(tables, quantity.NewRegexParser(tables.UnitVocabulary()), catalog, cacheManager)

	estimates, err := cache.NewRedisCache(&cfg.Redis)
	if err != nil {
		common.LogFatal("Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}
	defer estimates.Close()

	router, err := api.SetupRouter(cfg, engineSvc, catalog, store, estimates)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("Server listening",
			zap.Int("port", cfg.Server.Port),
			zap.Int("catalog_size", catalog.Len()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
