package main

import (
	"log"

	"github.com/vbonduro/restaurantinfo/internal/config"
	"github.com/vbonduro/restaurantinfo/internal/httpclient"
	"github.com/vbonduro/restaurantinfo/internal/logging"
	"github.com/vbonduro/restaurantinfo/internal/render"
	"github.com/vbonduro/restaurantinfo/internal/render/templates"
	"github.com/vbonduro/restaurantinfo/internal/restaurants"
	"github.com/vbonduro/restaurantinfo/internal/reviews"
	"github.com/vbonduro/restaurantinfo/internal/web"
)

func main() {
	cfg := config.Load(".env")

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	renderer, err := render.New(templates.FS)
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		return
	}

	api := httpclient.New(cfg.APIBaseURL, nil)
	server := web.NewServer(
		restaurants.NewClient(api),
		reviews.NewClient(api),
		renderer,
		cfg.ImageBaseURL,
		logger,
	)

	logger.Info("using data service", "base_url", cfg.APIBaseURL)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
