// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/imaneboulahya/Miso/internal/cache"
	"github.com/imaneboulahya/Miso/internal/config"
	"github.com/imaneboulahya/Miso/internal/database"
	"github.com/imaneboulahya/Miso/internal/middleware"
	"github.com/imaneboulahya/Miso/internal/models"
	"github.com/imaneboulahya/Miso/internal/repository"
	"github.com/imaneboulahya/Miso/internal/service"
	"github.com/imaneboulahya/Miso/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	store          *storage.Store

	userRepo       repository.UserRepository
	articleRepo    repository.ArticleRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	discussionRepo repository.DiscussionRepository

	articleService    *service.ArticleService
	commentService    *service.CommentService
	discussionService *service.DiscussionService
	userService       *service.UserService
}

// NewServer creates a server instance, establishing the database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with a sqlite DB and an optional miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	store, err := storage.NewStore(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("image store init failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)

	prom := middleware.InitMetrics("miso-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		store:          store,
		userRepo:       userRepo,
		articleRepo:    articleRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
		discussionRepo: discussionRepo,
	}

	server.articleService = service.NewArticleService(articleRepo, likeRepo, store.Remove, nil)
	server.commentService = service.NewCommentService(commentRepo, articleRepo)
	server.discussionService = service.NewDiscussionService(discussionRepo)
	server.userService = service.NewUserService(userRepo, articleRepo, likeRepo, store.Remove)

	middleware.InitMiddleware(cfg)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Miso Metrics Dashboard",
	}))

	// Uploaded images
	app.Static("/uploads", s.store.Dir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)
	auth.Get("/check", middleware.AuthRequired, s.CheckAuth)

	// Public article routes; OptionalAuth resolves the liked flag for
	// logged-in readers while anonymous readers browse freely.
	publicArticles := api.Group("/articles", middleware.OptionalAuth)
	publicArticles.Get("/", s.GetArticles)
	publicArticles.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchArticles)
	publicArticles.Get("/:id/comments", s.GetComments)
	publicArticles.Get("/:id/suggested", s.GetSuggestedArticles)
	publicArticles.Get("/:id", s.GetArticle)

	// Public category routes
	categories := api.Group("/categories", middleware.OptionalAuth)
	categories.Get("/", s.GetCategories)
	categories.Get("/:name/articles", s.GetCategoryArticles)

	// Public discussion routes
	publicDiscussions := api.Group("/discussions", middleware.OptionalAuth)
	publicDiscussions.Get("/", s.GetDiscussions)
	publicDiscussions.Get("/:id/messages", s.GetDiscussionMessages)
	publicDiscussions.Get("/:id", s.GetDiscussion)

	// Public user routes
	publicUsers := api.Group("/users", middleware.OptionalAuth)
	publicUsers.Get("/search", s.SearchUsers)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/:id", s.GetUserProfile)

	articles := protected.Group("/articles")
	articles.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_article"), s.CreateArticle)
	// Specific /:id/:resource routes before the generic /:id route
	articles.Post("/:id/like", s.ToggleLike)
	articles.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	articles.Delete("/:id/comments/:commentId", s.DeleteComment)
	articles.Delete("/:id", s.DeleteArticle)

	discussions := protected.Group("/discussions")
	discussions.Post("/", s.CreateDiscussion)
	discussions.Post("/:id/messages", middleware.RateLimit(
		s.redis, 15, time.Minute, "discussion_message"), s.PostDiscussionMessage)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app degrades gracefully without Redis; sessions fall back to
		// JWT-only validation.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}

// Start builds the Fiber app and blocks serving requests.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Miso API",
		BodyLimit: 16 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	port := s.config.Port
	if port == "" {
		port = "8080"
	}
	return app.Listen(":" + port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("error closing database: %v", err)
			}
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}
	return nil
}
