package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/db"
	"github.com/yungbote/lifeline-backend/internal/http"
	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

const tokenPruneInterval = time.Hour

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics
	SSEHub   *realtime.SSEHub

	store        *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	gin.SetMode(cfg.GinMode)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	store, err := db.Open(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init store: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := store.DB()
	if cfg.SeedDemoData {
		if err := db.SeedDemoData(ctx, theDB, log); err != nil {
			_ = store.Close()
			log.Sync()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	metrics := observability.NewMetrics()
	if sqlDB, err := theDB.DB(); err == nil {
		metrics.RegisterDB(sqlDB, store.Driver())
	}

	ssehub := realtime.NewSSEHub(log)
	metrics.RegisterGaugeFunc("sse_clients", "Open change streams.", func() float64 {
		return float64(ssehub.ClientCount())
	})

	clientset, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clientset, ssehub, metrics)
	handlerset := wireHandlers(log, serviceset, ssehub)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clientset,
		Metrics:      metrics,
		SSEHub:       ssehub,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background loops: the change-bus forwarder and the
// expired session sweeper.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.Clients.startForwarder(ctx, a.SSEHub); err != nil {
		return fmt.Errorf("start change forwarder: %w", err)
	}
	go a.pruneTokens(ctx)
	return nil
}

func (a *App) pruneTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenPruneInterval)
	defer ticker.Stop()
	for {
		n, err := a.Services.Auth.PruneExpiredTokens(ctx)
		if err != nil {
			a.Log.Warn("Pruning expired sessions failed", "error", err)
		} else if n > 0 {
			a.Log.Info("Pruned expired sessions", "count", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	srv := &http.Server{Engine: a.Router, OnShutdown: a.SSEHub.CloseAll}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	return srv.Run(ctx, addr, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("Closing store failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
