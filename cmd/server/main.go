package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/pixelforo/gameblog/internal/media"
	"github.com/pixelforo/gameblog/internal/repositories"
	"github.com/pixelforo/gameblog/internal/router"
	"github.com/pixelforo/gameblog/internal/seed"
	"github.com/pixelforo/gameblog/pkg/config"
	"github.com/pixelforo/gameblog/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the key-value storage backend
	store, err := config.InitStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.CloseStorage()

	// Blob handles live for this process only
	registry := media.NewRegistry()

	// Seed starter content on an empty store
	if cfg.SeedData {
		postRepo := repositories.NewStorePostRepository(store.Store, registry)
		userRepo := repositories.NewStoreUserRepository(store.Store)
		if err := seed.Run(context.Background(), postRepo, userRepo); err != nil {
			log.Fatalf("Failed to seed initial data: %v", err)
		}
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, store.Store, registry)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
