package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/huskytracks/huskytracks-api/api/swagger"
	"github.com/huskytracks/huskytracks-api/internal/handler"
	"github.com/huskytracks/huskytracks-api/internal/middleware"
	"github.com/huskytracks/huskytracks-api/internal/models"
	"github.com/huskytracks/huskytracks-api/internal/repository"
	"github.com/huskytracks/huskytracks-api/internal/service"
	"github.com/huskytracks/huskytracks-api/pkg/cache"
	"github.com/huskytracks/huskytracks-api/pkg/config"
	"github.com/huskytracks/huskytracks-api/pkg/database"
	"github.com/huskytracks/huskytracks-api/pkg/logger"
	"github.com/huskytracks/huskytracks-api/pkg/mail"
	corsmiddleware "github.com/huskytracks/huskytracks-api/pkg/middleware/cors"
	reqidmiddleware "github.com/huskytracks/huskytracks-api/pkg/middleware/requestid"
	"github.com/huskytracks/huskytracks-api/pkg/storage"
)

// @title HuskyTracks API
// @version 1.0.0
// @description Campus lost-and-found service for Northeastern University
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
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	authCfg := service.AuthConfig{
		AccessTokenSecret:   cfg.JWT.Secret,
		AccessTokenExpiry:   cfg.JWT.Expiration,
		Issuer:              cfg.JWT.Issuer,
		InstitutionalDomain: cfg.InstitutionalDomain,
		MaxLoginAttempts:    cfg.Login.MaxAttempts,
		AttemptWindow:       cfg.Login.AttemptWindow,
	}

	var attempts *repository.LoginAttemptRepository
	if cfg.Login.ThrottleEnable {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, login throttle disabled", "error", err)
		} else {
			defer redisClient.Close()
			attempts = repository.NewLoginAttemptRepository(redisClient)
			authCfg.ThrottleEnabled = true
		}
	}

	var authSvc *service.AuthService
	if attempts != nil {
		authSvc = service.NewAuthService(userRepo, attempts, validate, logr, authCfg)
	} else {
		authSvc = service.NewAuthService(userRepo, nil, validate, logr, authCfg)
	}

	userSvc := service.NewUserService(userRepo, validate, logr, cfg.InstitutionalDomain)
	itemSvc := service.NewItemService(itemRepo, userRepo, validate, logr, cfg.Uploads.DefaultImageURL)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, metricsSvc, logr)
	seedSvc := service.NewSeedService(userRepo, logr)

	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		sesMailer, err := mail.NewSESMailer(context.Background(), cfg.Mail.Region, cfg.Mail.FromAddress, cfg.Mail.FromName, logr)
		if err != nil {
			logr.Sugar().Fatalw("ses mailer setup failed", "error", err)
		}
		mailer = sesMailer
	}
	notificationSvc := service.NewNotificationService(mailer, metricsSvc, validate, logr)

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("uploads directory setup failed", "error", err)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	itemHandler := handler.NewItemHandler(itemSvc, uploadStore, cfg.Uploads.URLPrefix, cfg.Uploads.MaxFileSizeBytes)
	adminHandler := handler.NewAdminHandler(userSvc, itemSvc, analyticsSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	metaHandler := handler.NewMetaHandler()
	seedHandler := handler.NewSeedHandler(seedSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/login", authHandler.Login)
		api.GET("/locations", metaHandler.Locations)
		if cfg.Seed.Enabled && cfg.Env != config.EnvProduction {
			api.POST("/register-test-users", seedHandler.Register)
		}

		authed := api.Group("", middleware.JWT(authSvc))
		{
			authed.GET("/me", metaHandler.Me)
			authed.GET("/dashboard", metaHandler.Dashboard)
			authed.POST("/lost-items", itemHandler.Create)
			authed.GET("/lost-items", itemHandler.ListMine)

			triage := authed.Group("", middleware.RequireRoles(models.RoleSupervisor, models.RoleAdmin))
			{
				triage.GET("/lost-items/supervisor", itemHandler.ListForSupervisor)
				triage.PATCH("/lost-items/:id", itemHandler.UpdateStatus)
				triage.POST("/send-match-email", notificationHandler.SendMatchEmail)
			}

			admin := authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/create-user", adminHandler.CreateUser)
				admin.PATCH("/users/:id", adminHandler.UpdateUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
				admin.GET("/all-lost-items", adminHandler.ListAllItems)
				admin.GET("/analytics", adminHandler.Analytics)
				admin.GET("/analytics/export", adminHandler.ExportAnalytics)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
