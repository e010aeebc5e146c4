package server

import (
	"context"
	"fmt"
	"time"

	"gather/internal/cache"
	"gather/internal/config"
	"gather/internal/database"
	"gather/internal/middleware"
	"gather/internal/repository"
	"gather/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
	blockRepo      repository.BlockRepository
	postRepo       repository.PostRepository
	groupPostRepo  repository.GroupPostRepository

	userService       *service.UserService
	groupService      *service.GroupService
	membershipService *service.MembershipService
	postService       *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	prom := middleware.InitMetrics("gather-api")

	s := NewServerWithDB(cfg, db, redisClient)
	s.promMiddleware = prom

	middleware.InitMiddleware(cfg)

	return s, nil
}

// NewServerWithDB wires repositories and services over an existing database
// handle. Tests use it with an in-memory SQLite database.
func NewServerWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	postRepo := repository.NewPostRepository(db)
	groupPostRepo := repository.NewGroupPostRepository(db)

	resolver := service.NewVisibilityResolver(blockRepo, membershipRepo)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		blockRepo:      blockRepo,
		postRepo:       postRepo,
		groupPostRepo:  groupPostRepo,

		userService:       service.NewUserService(userRepo, blockRepo),
		groupService:      service.NewGroupService(groupRepo, membershipRepo),
		membershipService: service.NewMembershipService(groupRepo, membershipRepo),
		postService:       service.NewPostService(postRepo, groupPostRepo, groupRepo, membershipRepo, resolver),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
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

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	api := app.Group("/api")

	// Auth (redis-backed per-IP limit on credential endpoints)
	auth := api.Group("/auth", middleware.RateLimit(s.redis, 10, time.Minute, "auth"))
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	// Everything below requires a bearer token
	authed := api.Group("", middleware.AuthRequired)

	// Users and blocking
	users := authed.Group("/users")
	users.Get("/", s.ListUsers)
	users.Get("/me", s.Me)
	users.Get("/search", s.SearchUsers)
	users.Get("/blocked", s.ListBlocked)
	users.Post("/block", s.BlockUser)
	users.Delete("/block/:id", s.UnblockUser)
	users.Get("/:id", s.GetUser)
	users.Get("/:id/posts", s.AuthorFeed)

	// Personal posts
	posts := authed.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Get("/feed", s.PublicFeed)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	// Groups
	groups := authed.Group("/groups")
	groups.Post("/", s.CreateGroup)
	groups.Get("/", s.ListGroups)
	groups.Get("/owned", s.ListOwnedGroups)
	groups.Get("/joined", s.ListJoinedGroups)
	groups.Get("/:id", s.GetGroup)
	groups.Delete("/:id", s.DeleteGroup)
	groups.Get("/:id/members", s.ListGroupMembers)
	groups.Delete("/:id/members/:userId", s.RemoveMember)
	groups.Post("/:id/members/:userId/promote", s.PromoteMember)
	groups.Post("/:id/members/:userId/demote", s.DemoteMember)
	groups.Post("/:id/leave", s.LeaveGroup)
	groups.Get("/:id/requests", s.ListGroupRequests)
	groups.Post("/:id/requests", s.RequestJoin)
	groups.Delete("/:id/requests", s.CancelRequest)
	groups.Post("/:id/requests/:userId/accept", s.AcceptRequest)
	groups.Post("/:id/requests/:userId/reject", s.RejectRequest)

	// Group posts
	groups.Post("/:id/posts", s.CreateGroupPost)
	groups.Get("/:id/posts", s.GroupFeed)
	authed.Delete("/group-posts/:id", s.DeleteGroupPost)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Start sets up the app and begins serving.
func (s *Server) Start(app *fiber.App) error {
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully closes the server's resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Warn("Redis close failed", "error", err.Error())
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	_ = ctx
	return nil
}
