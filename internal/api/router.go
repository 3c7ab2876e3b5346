package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/protolab/portal-api/docs"
	"github.com/protolab/portal-api/internal/api/handler"
	"github.com/protolab/portal-api/internal/api/middleware"
	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/service"
	mongodb "github.com/protolab/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/protolab/portal-api/internal/infrastructure/db/redis"
	"github.com/protolab/portal-api/internal/infrastructure/storage"
)

// RouterConfig carries the shared infrastructure the router wires handlers to.
type RouterConfig struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Events    service.EventEnqueuer
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(cfg.DB)
	projectRepo := mongodb.NewProjectRepository(cfg.DB)
	conversationRepo := mongodb.NewConversationRepository(cfg.DB)
	messageRepo := mongodb.NewMessageRepository(cfg.DB)
	postRepo := mongodb.NewPostRepository(cfg.DB)
	unread := redisdb.NewUnreadCounter(cfg.Redis)

	attachments, err := storage.NewAttachmentStore(cfg.DB, "/uploads")
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	projectService := service.NewProjectService(projectRepo, cfg.Log)
	chatService := service.NewChatService(conversationRepo, messageRepo, unread, cfg.Events, cfg.Log)
	postService := service.NewPostService(postRepo, cfg.Log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	chatHandler := handler.NewChatHandler(chatService)
	postHandler := handler.NewPostHandler(postService)
	uploadHandler := handler.NewUploadHandler(attachments)

	auth := middleware.Auth(cfg.JWTSecret)
	authenticated := middleware.Gate("")
	adminOnly := middleware.Gate(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth, authenticated)

	// --- Profile ---
	e.GET("/me", profileHandler.Get, auth, authenticated)
	e.PUT("/me", profileHandler.Update, auth, authenticated)

	// --- Projects ---
	projects := e.Group("/projects", auth, authenticated)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id/status", projectHandler.AdvanceStatus, adminOnly)

	// --- Support chat ---
	chat := e.Group("/chat", auth, authenticated)
	chat.GET("/messages", chatHandler.List)
	chat.POST("/messages", chatHandler.Send)
	chat.GET("/unread", chatHandler.Unread)
	chat.POST("/read", chatHandler.MarkRead)

	// --- Blog / page CMS ---
	e.GET("/posts", postHandler.ListPublished)
	e.GET("/posts/:slug", postHandler.GetPublished)

	adminPosts := e.Group("/admin/posts", auth, adminOnly)
	adminPosts.POST("", postHandler.Create)
	adminPosts.PUT("/:id", postHandler.Update)
	adminPosts.DELETE("/:id", postHandler.Delete)

	// --- Attachments ---
	e.POST("/uploads", uploadHandler.Upload, auth, authenticated)
	e.GET("/uploads/:id", uploadHandler.Download)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
