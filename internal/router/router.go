package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/avdeyev/postline/internal/cache"
	"github.com/avdeyev/postline/internal/feed"
	"github.com/avdeyev/postline/internal/handlers"
	"github.com/avdeyev/postline/internal/media"
	"github.com/avdeyev/postline/internal/middleware"
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
	"github.com/avdeyev/postline/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	firebaseAuthClient *auth.Client,
	pageCache cache.PageCache,
	cfg *config.Config,
) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Info("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	var mediaStore media.Store
	if mgClient != nil {
		store, err := media.NewGridFSStore(mgClient.Database("postline"))
		if err != nil {
			log.Fatalf("Failed to initialize media store: %v", err)
		}
		mediaStore = store
	}

	composer := feed.NewComposer(postRepo, groupRepo, userRepo, followRepo, cfg.PageSize)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Info("Auth routes configured.")

	// --- Public routes (viewer resolved when a session is present) ---
	public := e.Group("", middleware.SessionUser(cfg.JWTSecret))

	feedHandler := handlers.NewFeedHandler(composer, userRepo, followRepo, commentRepo)
	cached := middleware.PageCache(pageCache, cfg.FeedCacheTTL)
	public.GET("/", feedHandler.GetPublicFeed, cached)
	public.GET("/feed", feedHandler.GetPublicFeed, cached)
	public.GET("/groups/:slug", feedHandler.GetGroupFeed)
	public.GET("/users/:username", feedHandler.GetAuthorFeed)
	log.Info("Feed routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, commentRepo, userRepo, groupRepo, mediaStore)
	postHandler.RegisterPublicPostRoutes(public)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterPublicCommentRoutes(public)

	groupHandler := handlers.NewGroupHandler(groupRepo, userRepo)
	groupHandler.RegisterPublicGroupRoutes(public)

	mediaHandler := handlers.NewMediaHandler(mediaStore)
	if mediaStore != nil {
		mediaHandler.RegisterPublicMediaRoutes(public)
	}

	// --- Protected routes (anonymous requests bounce to signin) ---
	protected := e.Group("", middleware.SessionUser(cfg.JWTSecret), middleware.RequireLogin("/auth/signin"))
	protected.GET("/feed/following", feedHandler.GetFollowedFeed)
	postHandler.RegisterPostRoutes(protected)
	commentHandler.RegisterCommentRoutes(protected)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, cfg.StrictUnfollow)
	followHandler.RegisterFollowRoutes(protected)
	if mediaStore != nil {
		mediaHandler.RegisterMediaRoutes(protected)
	}
	log.Info("Post, comment, follow and media routes configured.")

	// --- JSON API surface (strict auth, no redirects) ---
	api := e.Group("/api/v1")
	if firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuth(firebaseAuthClient, userRepo))
		log.Info("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
		log.Info("JWT authentication middleware applied to /api/v1 group.")
	}

	admin := api.Group("/admin")
	groupHandler.RegisterAdminGroupRoutes(admin)
	adminHandler := handlers.NewAdminHandler(pageCache, userRepo)
	adminHandler.RegisterAdminRoutes(admin)
	log.Info("Admin routes configured.")

	log.Info("All routes configured.")
}
