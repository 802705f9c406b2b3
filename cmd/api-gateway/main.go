package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/defense-scheduler/api/swagger"
	"github.com/noah-isme/defense-scheduler/internal/bootstrap"
	internalhandler "github.com/noah-isme/defense-scheduler/internal/handler"
	internalmiddleware "github.com/noah-isme/defense-scheduler/internal/middleware"
	"github.com/noah-isme/defense-scheduler/internal/models"
	"github.com/noah-isme/defense-scheduler/internal/service"
	"github.com/noah-isme/defense-scheduler/pkg/config"
	"github.com/noah-isme/defense-scheduler/pkg/logger"
	corsmiddleware "github.com/noah-isme/defense-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/defense-scheduler/pkg/middleware/requestid"
)

// @title Defense Scheduler API
// @version 0.1.0
// @description Constrained multi-objective scheduling engine for thesis/interim defense sessions
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := bootstrap.Build(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to bootstrap application", "error", err)
	}
	defer app.Close()

	metricsHandler := internalhandler.NewMetricsHandler(app.Metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(app.Metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	authSvc := service.NewAuthService(app.UserRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		Audience:          []string{"defense-scheduler-clients"},
	})
	authHandler := internalhandler.NewAuthHandler(authSvc)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", authHandler.Login)
	protectedAuth := authRoutes.Group("")
	protectedAuth.Use(internalmiddleware.JWT(authSvc))
	protectedAuth.GET("/me", authHandler.Me)

	algorithmHandler := internalhandler.NewAlgorithmHandler(app.Orchestrator, app.Registry, app.Metrics, app.RunRepo, app.Descriptors)
	progressHandler := internalhandler.NewProgressHandler(app.ProgressHub, cfg.Progress.PingInterval)
	scheduleHandler := internalhandler.NewScheduleHandler(app.ScheduleRepo)

	api.GET("/algorithms", algorithmHandler.List)
	api.GET("/schedule", scheduleHandler.List)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))

	secured.GET("/runs/:id", algorithmHandler.Result)
	secured.GET("/progress", progressHandler.Stream)
	secured.POST("/progress", progressHandler.ClientFrame)

	operator := secured.Group("/algorithms")
	operator.Use(internalmiddleware.RBAC(string(models.RoleAdmin), string(models.RoleSuperAdmin)))
	operator.POST("/:tag/run", algorithmHandler.Run)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
