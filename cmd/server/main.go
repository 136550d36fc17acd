package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/avdeyev/postline/internal/cache"
	"github.com/avdeyev/postline/internal/router"
	"github.com/avdeyev/postline/pkg/config"
	"github.com/avdeyev/postline/pkg/firebase"
	"github.com/avdeyev/postline/validators"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase is optional; without credentials the service runs local JWT auth
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// Page cache: redis when configured, in-process otherwise
	var pageCache cache.PageCache
	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if redisClient != nil {
		pageCache = cache.NewRedis(redisClient)
	} else {
		log.Info("REDIS_ADDR not set, using in-process page cache.")
		pageCache = cache.NewMemory()
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, pageCache, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
