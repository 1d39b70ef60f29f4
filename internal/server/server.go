// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/Zarsham27/social-networking-web-app/internal/config"
	"github.com/Zarsham27/social-networking-web-app/internal/featureflags"
	"github.com/Zarsham27/social-networking-web-app/internal/middleware"
	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/repository"
	"github.com/Zarsham27/social-networking-web-app/internal/service"
	"github.com/Zarsham27/social-networking-web-app/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// uploadsPath is where stored images are served from.
const uploadsPath = "/uploads"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       session.Store
	tokens         *session.Tokens
	featureFlags   *featureflags.Manager

	userService        *service.UserService
	graphService       *service.GraphService
	postService        *service.PostService
	interactionService *service.InteractionService
	feedService        *service.FeedService
	imageService       *service.ImageService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Sessions live in Redis when a client is given and in process memory
// otherwise.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL())
	} else {
		middleware.Logger.Warn("Redis unavailable, sessions are kept in memory")
		sessions = session.NewMemoryStore(cfg.SessionTTL())
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("social-api"),
		sessions:       sessions,
		tokens:         session.NewTokens(cfg.JWTSecret),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	server.userService = service.NewUserService(userRepo)
	server.graphService = service.NewGraphService(followRepo, friendRepo, userRepo)
	server.postService = service.NewPostService(postRepo)
	server.interactionService = service.NewInteractionService(postRepo, commentRepo)
	server.feedService = service.NewFeedService(server.graphService, server.postService)
	server.imageService = service.NewImageService(cfg.UploadDir, uploadsPath, cfg.MaxUploadMB)

	return server, nil
}

// NewApp builds the Fiber application with middleware and routes attached.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Social API",
		BodyLimit:    int(s.imageService.MaxUploadSizeBytes()) + 1024*1024,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing sets the trace ID that the context middleware copies
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	app.Use(middleware.RequestDeadline(s.config.RequestTimeout()))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group(s.config.APIPrefix)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Social API Metrics Dashboard",
	}))

	// Stored images
	app.Static(uploadsPath, s.imageService.Dir(), fiber.Static{MaxAge: 86400})

	// Session routes
	api.Get("/login", s.LoginStatus)
	api.Post("/login", s.Login)
	api.Delete("/login", s.Logout)

	// Public user routes
	api.Post("/users", s.Register)
	api.Get("/users", s.SearchUsers)
	api.Get("/users/:username", s.GetUserProfile)

	// Public content routes
	api.Get("/contents", s.SearchContents)
	api.Get("/contents/:id/likes", s.GetLikes)
	api.Get("/contents/:id/comments", s.GetComments)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protected.Get("/profile", s.GetMyProfile)
	protected.Put("/profile", s.UpdateMyProfile)
	protected.Put("/profile/picture", s.UpdateProfilePicture)

	protected.Post("/contents", s.CreateContent)
	protected.Post("/contents/:id/like", s.LikeContent)
	protected.Delete("/contents/:id/like", s.UnlikeContent)
	protected.Post("/contents/:id/comments", s.CreateComment)
	protected.Get("/feed", s.GetFeed)

	protected.Get("/follow", s.GetFollowing)
	protected.Post("/follow", s.Follow)
	protected.Delete("/follow", s.Unfollow)

	protected.Get("/friend-requests", s.GetIncomingRequests)
	protected.Post("/friend-requests", s.SendFriendRequest)
	protected.Post("/friend-requests/:id/accept", s.AcceptFriendRequest)

	protected.Post("/uploads", s.FeatureRequired(featureflags.Uploads), s.UploadImage)
	protected.Get("/features", s.GetFeatureFlags)
}

// errorHandler renders errors that escape handlers, including Fiber's own
// (unknown route, oversized body).
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}
	return s.respondError(c, err)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: an
// absent client reports "unavailable" without failing the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()

	middleware.Logger.Info("server starting", "port", s.config.Port, "prefix", s.config.APIPrefix)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
