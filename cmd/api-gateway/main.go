package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/timetable-wizard-api/api/swagger"
	"github.com/noah-isme/timetable-wizard-api/internal/handler"
	"github.com/noah-isme/timetable-wizard-api/internal/middleware"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
	"github.com/noah-isme/timetable-wizard-api/internal/repository"
	"github.com/noah-isme/timetable-wizard-api/internal/service"
	"github.com/noah-isme/timetable-wizard-api/pkg/cache"
	"github.com/noah-isme/timetable-wizard-api/pkg/config"
	"github.com/noah-isme/timetable-wizard-api/pkg/database"
	"github.com/noah-isme/timetable-wizard-api/pkg/jobs"
	"github.com/noah-isme/timetable-wizard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-wizard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-wizard-api/pkg/middleware/requestid"
)

// @title Timetable Wizard API
// @version 0.1.0
// @description Constraint and fixed-slot wizard for school timetables, plus weekly load audits.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	validate := validator.New()
	deps := map[string]handler.Pinger{"postgres": handler.PingFunc(db.PingContext)}

	var cacheRepo *repository.CacheRepository
	if cfg.Audit.EnableCache {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, audit cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			deps["redis"] = cacheRepo
		}
	}
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Audit.CacheTTL, logr, true)
	}

	wizardSvc, queue := newWizardService(cfg, db, metrics, validate, logr)
	if queue != nil {
		queue.Start(ctx)
		defer queue.Stop()
	}

	policy, err := service.NewAuditPolicy(cfg.Audit.WeeklyCap, cfg.Audit.DailyCap, cfg.Audit.SchoolDays, cfg.Audit.Level)
	if err != nil {
		logr.Fatal("invalid audit policy", zap.Error(err))
	}
	auditSvc := service.NewAuditService(cacheSvc, metrics, logr, service.AuditConfig{Policy: policy, CacheTTL: cfg.Audit.CacheTTL})
	tokenSvc := service.NewTokenService(service.TokenConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, deps, logr)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))

	api.GET("/timegrid/:level", handler.NewTimeGridHandler().Get)
	handler.NewWizardHandler(wizardSvc).Register(api)

	auditHandler := handler.NewAuditHandler(auditSvc)
	audits := api.Group("/audits", middleware.RequireRoles(models.RoleAdmin))
	audits.POST("/load", auditHandler.Audit)
	audits.DELETE("/cache", auditHandler.PurgeCache)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newWizardService wires the wizard with the roster and, when enabled, the
// write-behind session store.
func newWizardService(cfg *config.Config, db *sqlx.DB, metrics *service.MetricsService, validate *validator.Validate, logr *zap.Logger) (*service.WizardService, *jobs.Queue) {
	roster := repository.NewRosterRepository(db)
	wizardCfg := service.WizardConfig{SessionTTL: cfg.Wizard.SessionTTL}

	if !cfg.Wizard.EnablePersistence {
		return service.NewWizardService(nil, roster, nil, metrics, validate, logr, wizardCfg), nil
	}

	sessions := repository.NewWizardSessionRepository(db)
	var svc *service.WizardService
	queue := jobs.NewQueue("wizard-sessions", func(ctx context.Context, job jobs.Job) error {
		return svc.PersistSnapshot(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Wizard.PersistWorkers,
		MaxRetries: cfg.Wizard.PersistRetries,
		Logger:     logr,
	})
	svc = service.NewWizardService(sessions, roster, queue, metrics, validate, logr, wizardCfg)
	return svc, queue
}
