package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/client"
	"social-feed-api/internal/handler"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/middleware"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	TokenTTL       time.Duration
	IndexCacheTTL  time.Duration
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	ImageStore     client.ImageStore
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "social-feed-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "social-feed-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "social-feed-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "social-feed-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "social-feed-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		response.SendError(c, 404, response.ErrCodeNotFound, "Page not found")
	})

	// Page cache for the index feed; a nil Redis client disables caching
	pageCache := cache.New(cache.NewRedisStore(cfg.Redis), cfg.IndexCacheTTL, cfg.Logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	groupRepo := repository.NewGroupRepository(cfg.DB)
	postRepo := repository.NewPostRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	followRepo := repository.NewFollowRepository(cfg.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.Logger)
	postService := service.NewPostService(postRepo, userRepo, groupRepo, commentRepo, followRepo, cfg.ImageStore, pageCache, cfg.Metrics, cfg.Logger)
	profileService := service.NewProfileService(userRepo, postRepo, followRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, cfg.Metrics, cfg.Logger)
	followService := service.NewFollowService(followRepo, userRepo, cfg.Metrics, cfg.Logger)
	groupService := service.NewGroupService(groupRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, pageCache, cfg.Metrics, cfg.Logger)
	groupHandler := handler.NewGroupHandler(groupService, postService)
	profileHandler := handler.NewProfileHandler(profileService)
	commentHandler := handler.NewCommentHandler(commentService)
	followHandler := handler.NewFollowHandler(followService, postService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	authOptional := middleware.OptionalAuth(cfg.JWTSecret)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.GET("/login", authHandler.LoginForm)
		auth.POST("/login", authHandler.Login)
	}

	// ============================================================
	// Feed routes
	// ============================================================
	r.GET("/", postHandler.Index)
	r.GET("/new", authRequired, postHandler.NewPostForm)
	r.POST("/new", authRequired, postHandler.CreatePost)
	r.GET("/follow", authRequired, followHandler.FollowIndex)
	r.GET("/groups", groupHandler.ListGroups)
	r.GET("/group/:slug", groupHandler.GroupPosts)

	// ============================================================
	// Profile and post routes
	// ============================================================
	r.GET("/:username", authOptional, profileHandler.Profile)
	r.POST("/:username/follow", authRequired, followHandler.Follow)
	r.POST("/:username/unfollow", authRequired, followHandler.Unfollow)
	r.GET("/:username/:postId", authOptional, postHandler.PostView)
	r.GET("/:username/:postId/edit", authRequired, postHandler.EditForm)
	r.POST("/:username/:postId/edit", authRequired, postHandler.UpdatePost)
	r.GET("/:username/:postId/comment", authRequired, commentHandler.CommentForm)
	r.POST("/:username/:postId/comment", authRequired, commentHandler.AddComment)

	return r
}
