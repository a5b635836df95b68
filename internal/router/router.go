package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pixelforo/gameblog/internal/handlers"
	"github.com/pixelforo/gameblog/internal/media"
	"github.com/pixelforo/gameblog/internal/middleware"
	"github.com/pixelforo/gameblog/internal/repositories"
	"github.com/pixelforo/gameblog/internal/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// Reading the blog is public; every mutation sits behind the JWT middleware.
func SetupRoutes(e *echo.Echo, store *storage.Store, registry *media.Registry) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	postRepo := repositories.NewStorePostRepository(store, registry)
	commentRepo := repositories.NewStoreCommentRepository(store)
	userRepo := repositories.NewStoreUserRepository(store)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public reads and JWT-protected mutations ---
	public := e.Group("/api/v1")
	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to mutating routes.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(public, protected)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo)
	commentHandler.RegisterCommentRoutes(public, protected)
	log.Println("Comment routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo)
	feedHandler.RegisterFeedRoutes(public)
	log.Println("Feed routes configured.")
}
