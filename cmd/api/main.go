package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Carlos6464/publiflow-backend/api/swagger"
	"github.com/Carlos6464/publiflow-backend/internal/handler"
	"github.com/Carlos6464/publiflow-backend/internal/middleware"
	"github.com/Carlos6464/publiflow-backend/internal/models"
	"github.com/Carlos6464/publiflow-backend/internal/repository"
	"github.com/Carlos6464/publiflow-backend/internal/service"
	"github.com/Carlos6464/publiflow-backend/pkg/cache"
	"github.com/Carlos6464/publiflow-backend/pkg/config"
	"github.com/Carlos6464/publiflow-backend/pkg/database"
	"github.com/Carlos6464/publiflow-backend/pkg/logger"
	corsmiddleware "github.com/Carlos6464/publiflow-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/Carlos6464/publiflow-backend/pkg/middleware/requestid"
	"github.com/Carlos6464/publiflow-backend/pkg/storage"
)

// @title Publiflow API
// @version 1.0.0
// @description School social post backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	store, err := storage.NewImageStore(cfg.Uploads.Dir, cfg.Uploads.MaxFileSizeBytes, cfg.Uploads.AllowedMIMEs)
	if err != nil {
		logr.Sugar().Fatalw("failed to init image store", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	postRepo := repository.NewPostRepository(db)

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	cacheEnabled := cfg.Cache.Enabled
	if cacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, feed cache disabled", "error", err)
			cacheEnabled = false
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.FeedTTL, logr, cacheEnabled)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
	})
	userSvc := service.NewUserService(userRepo, roleRepo, validate, logr)
	postSvc := service.NewPostService(postRepo, cacheSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	postHandler := handler.NewPostHandler(postSvc, store)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	root := r.Group(cfg.APIPrefix)

	root.Static("/uploads", store.Dir())

	root.POST("/login", authHandler.Login)
	root.GET("/roles", userHandler.ListRoles)

	users := root.Group("/users")
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/type/:type", userHandler.ListByType)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	teacherOnly := middleware.Roles(roleRepo, models.RoleTeacher)
	anyRole := middleware.Roles(roleRepo, models.RoleTeacher, models.RoleStudent)

	posts := root.Group("/posts")
	posts.Use(middleware.JWT(authSvc))
	{
		posts.GET("", teacherOnly, postHandler.List)
		posts.GET("/me", teacherOnly, postHandler.ListMine)
		posts.GET("/feed", anyRole, postHandler.Feed)
		posts.GET("/search", anyRole, postHandler.Search)
		posts.GET("/export", teacherOnly, postHandler.Export)
		posts.POST("", teacherOnly, postHandler.Create)
		posts.GET("/:id", teacherOnly, postHandler.Get)
		posts.PUT("/:id", teacherOnly, postHandler.Update)
		posts.DELETE("/:id", teacherOnly, postHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
