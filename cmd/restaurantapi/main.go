package main

import (
	"context"
	"log"

	"github.com/vbonduro/restaurantinfo/internal/api"
	"github.com/vbonduro/restaurantinfo/internal/config"
	"github.com/vbonduro/restaurantinfo/internal/db"
	"github.com/vbonduro/restaurantinfo/internal/fixtures"
	"github.com/vbonduro/restaurantinfo/internal/logging"
	"github.com/vbonduro/restaurantinfo/internal/service"
	"github.com/vbonduro/restaurantinfo/internal/store"
)

func main() {
	cfg := config.Load(".env")

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	catalog := service.NewCatalogService(store.NewRestaurantStore(database), store.NewReviewStore(database), logger)

	if cfg.SeedFixtures {
		data, err := fixtures.Load()
		if err != nil {
			logger.Error("failed to load fixtures", "error", err)
			return
		}
		if _, err := catalog.Seed(context.Background(), data.Restaurants, data.Reviews); err != nil {
			logger.Error("failed to seed catalog", "error", err)
			return
		}
	}

	handler := api.NewHandler(api.Config{Logger: logger, Catalog: catalog})
	if err := handler.ListenAndServe(cfg.APIListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
