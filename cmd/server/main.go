package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/Parkkangwon/trendwatch/internal/catalog"
	"github.com/Parkkangwon/trendwatch/internal/config"
	"github.com/Parkkangwon/trendwatch/internal/handler"
	"github.com/Parkkangwon/trendwatch/internal/middleware"
	"github.com/Parkkangwon/trendwatch/internal/router"
	"github.com/Parkkangwon/trendwatch/internal/service"
	"github.com/Parkkangwon/trendwatch/internal/store"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "trendwatch")

	// A valid credential store is required to start; there is no fallback.
	st, err := store.Open(cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("failed to open credential store: %v", err)
	}

	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is not set")
	}

	region, errMsg := middleware.ValidateRegionCode(cfg.RegionCode)
	if errMsg != "" {
		log.Fatalf("invalid REGION_CODE %q: %s", cfg.RegionCode, errMsg)
	}
	cfg.RegionCode = region

	ctx := context.Background()
	client, err := catalog.New(ctx, cfg.YouTubeAPIKey, cfg.FetchTimeout, middleware.Logger)
	if err != nil {
		log.Fatalf("failed to initialize catalog client: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	catalogSvc := service.NewCatalogService(client, cache, cfg.RegionCode, cfg.MaxResults, middleware.Logger)
	authSvc := service.NewAuthService(st)

	app := fiber.New(fiber.Config{
		AppName:      "Trendwatch API",
		ServerHeader: "Trendwatch",
	})

	h := &router.Handlers{
		Video:  handler.NewVideoHandler(catalogSvc),
		Auth:   handler.NewAuthHandler(authSvc, st),
		Admin:  handler.NewAdminHandler(st),
		Health: handler.NewHealthHandler(cfg.CredentialsFile, cache.Client()),
	}
	router.Setup(app, h, authSvc, cfg.CORSOrigins)

	log.Printf("trendwatch starting on :%s (env=%s region=%s)", cfg.Port, cfg.Environment, cfg.RegionCode)
	log.Fatal(app.Listen(":" + cfg.Port))
}
