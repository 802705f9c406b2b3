// Package bootstrap wires the service graph shared by the HTTP front
// door (cmd/api-gateway) and the operator CLI (cmd/schedctl), so both
// talk to one in-process orchestrator.Service instead of duplicating
// the wiring per binary.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/defense-scheduler/internal/algorithm"
	"github.com/noah-isme/defense-scheduler/internal/orchestrator"
	"github.com/noah-isme/defense-scheduler/internal/progress"
	"github.com/noah-isme/defense-scheduler/internal/repository"
	"github.com/noah-isme/defense-scheduler/internal/runstore"
	"github.com/noah-isme/defense-scheduler/internal/service"
	"github.com/noah-isme/defense-scheduler/pkg/cache"
	"github.com/noah-isme/defense-scheduler/pkg/config"
	"github.com/noah-isme/defense-scheduler/pkg/database"
	appErrors "github.com/noah-isme/defense-scheduler/pkg/errors"
	"github.com/noah-isme/defense-scheduler/pkg/paramschema"
)

// App holds every long-lived component either front door needs.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB           *sqlx.DB
	Redis        *redis.Client
	UserRepo     *repository.UserRepository
	RunRepo      *repository.RunRepository
	ScheduleRepo *repository.ScheduleResultRepository
	CacheRepo    *repository.CacheRepository

	Registry     *algorithm.Registry
	Descriptors  map[string][]algorithm.ParamDescriptor
	ProgressHub  *progress.Hub
	Orchestrator *orchestrator.Service
	Metrics      *service.MetricsService
}

// Close releases the database and cache connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.CacheRepo != nil {
		_ = a.CacheRepo.Close()
	}
}

// Build loads every repository, the algorithm registry and the
// orchestrator.Service on top of them. Redis is best-effort: a
// connection failure disables memoization rather than failing startup,
// matching the teacher's "cache disabled" fallback in cmd/api-gateway.
func Build(cfg *config.Config, logr *zap.Logger) (*App, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	app := &App{
		Config:       cfg,
		Logger:       logr,
		DB:           db,
		UserRepo:     repository.NewUserRepository(db),
		RunRepo:      repository.NewRunRepository(db),
		ScheduleRepo: repository.NewScheduleResultRepository(db),
		Metrics:      service.NewMetricsService(),
	}

	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("memoization cache disabled", "error", err)
	} else {
		app.Redis = client
		app.CacheRepo = repository.NewCacheRepository(client, logr)
	}

	app.Registry = algorithm.NewDefaultRegistry()
	published, err := paramschema.Load(cfg.ParamSchemaDir())
	if err != nil {
		return nil, fmt.Errorf("load published parameter descriptors: %w", err)
	}
	app.Descriptors = paramschema.Merge(app.Registry, published)
	app.ProgressHub = progress.NewHub(cfg.Progress.FrameBufferSize)

	cacheSvc := service.NewCacheService(app.CacheRepo, app.Metrics, cfg.Scheduler.MemoizationTTL, logr, app.CacheRepo != nil && cfg.Scheduler.MemoizationEnabled)
	var memoCache orchestrator.Cache
	if cacheSvc.Enabled() {
		memoCache = cacheServiceAdapter{svc: cacheSvc}
	}

	app.Orchestrator = orchestrator.NewService(
		app.Registry,
		repository.NewSnapshotRepository(db),
		resultStore{runs: app.RunRepo, schedules: app.ScheduleRepo},
		app.ProgressHub,
		memoCache,
		cfg.Scheduler.MemoizationTTL,
		0,
		logr,
	)

	return app, nil
}

// resultStore composes RunRepository and ScheduleResultRepository into
// orchestrator.ResultStore: the two repositories persist distinct
// tables but the orchestrator only ever needs them together.
type resultStore struct {
	runs      *repository.RunRepository
	schedules *repository.ScheduleResultRepository
}

func (r resultStore) CreateRun(ctx context.Context, run *runstore.RunRecord) error {
	return r.runs.CreateRun(ctx, run)
}

func (r resultStore) UpdateRun(ctx context.Context, run *runstore.RunRecord) error {
	return r.runs.UpdateRun(ctx, run)
}

func (r resultStore) ReplaceSchedule(ctx context.Context, runID string, rows []runstore.ScheduleRow) error {
	return r.schedules.ReplaceSchedule(ctx, runID, rows)
}

// cacheServiceAdapter adapts service.CacheService's hit/miss boolean
// return onto orchestrator.Cache's error-as-miss contract, so the
// orchestrator gets CacheService's metrics and logging for free instead
// of talking to CacheRepository directly.
type cacheServiceAdapter struct {
	svc *service.CacheService
}

func (a cacheServiceAdapter) Get(ctx context.Context, key string, dest any) error {
	hit, err := a.svc.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if !hit {
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (a cacheServiceAdapter) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return a.svc.Set(ctx, key, value, ttl)
}
