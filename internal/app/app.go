package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/data/db"
	"github.com/yungbote/cablehouse-backend/internal/http"
	"github.com/yungbote/cablehouse-backend/internal/observability"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
	"github.com/yungbote/cablehouse-backend/internal/realtime/bus"
)

const (
	shutdownTimeout   = 10 * time.Second
	collectorInterval = 15 * time.Second
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	SSEHub   *realtime.SSEHub
	Bus      bus.Bus
	Metrics  *observability.Metrics
	Server   *http.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Otel.Environment,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     observability.ParseHeaders(cfg.Otel.Headers),
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	})

	dbService, err := db.NewService(cfg.dbConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if err := db.EnsureOrderIndexes(theDB); err != nil {
		log.Warn("order index creation failed", "error", err)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	changeBus, err := wireBus(log, cfg.Redis)
	if err != nil {
		_ = dbService.Close()
		return nil, err
	}

	store, err := resolveBackupStore(ctx, log, cfg.Backup)
	if err != nil {
		_ = changeBus.Close()
		_ = dbService.Close()
		return nil, err
	}

	hub := realtime.NewSSEHub(log)
	metrics.RegisterSSEClients(hub.ClientCount)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, changeBus, metrics, store)
	if err := serviceset.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		_ = changeBus.Close()
		_ = dbService.Close()
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	handlerset := wireHandlers(log, theDB, serviceset, hub)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       hub,
		Bus:          changeBus,
		Metrics:      metrics,
		Server:       server,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

func wireBus(log *logger.Logger, cfg RedisConfig) (bus.Bus, error) {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, change events stay in this process")
		return bus.NewLocalBus(), nil
	}
	b, err := bus.NewRedisBus(log, bus.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Channel:  cfg.Channel,
	})
	if err != nil {
		return nil, fmt.Errorf("init redis change bus: %w", err)
	}
	return b, nil
}

// Run serves HTTP and forwards bus events into the hub until ctx is
// cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if err := a.Bus.StartForwarder(gctx, a.SSEHub.Broadcast); err != nil {
		return fmt.Errorf("start change forwarder: %w", err)
	}

	if a.Metrics != nil {
		a.Metrics.StartDBCollector(gctx, a.Log, a.DB, collectorInterval)
		if a.Cfg.Redis.Addr != "" {
			a.Metrics.StartRedisCollector(gctx, a.Log, a.Cfg.Redis.Addr, collectorInterval)
		}
	}

	if a.Cfg.Backup.Interval > 0 {
		g.Go(func() error {
			a.runBackups(gctx, a.Cfg.Backup.Interval)
			return nil
		})
	}

	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
		return a.Server.Run(gctx, a.Cfg.HTTPAddr)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		a.Log.Info("Shutting down HTTP server")
		if err := a.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) runBackups(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.Services.Backup.Snapshot(ctx); err != nil {
				a.Log.Warn("scheduled backup failed", "error", err)
			}
		}
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.dbService != nil {
		_ = a.dbService.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
