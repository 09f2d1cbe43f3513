package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-media-cms/internal/cms/adapter/inbound/http"
	"github.com/anthanhphan/go-media-cms/internal/cms/adapter/outbound/metrics"
	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/go-media-cms/internal/cms/service"
	"github.com/anthanhphan/gosdk/logger"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	startupTimeout   = 30 * time.Second
	shutdownTimeout  = 15 * time.Second
	reconcileTimeout = 5 * time.Minute
)

type App struct {
	cfg        *config.Config
	server     *httpHandler.Server
	backends   *backends
	reconciler port.Reconciler
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	return newApp(cfg)
}

func newApp(cfg *config.Config) (*App, error) {
	// 3. Metrics
	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observer, err := metrics.NewPrometheusObserver("cms", registry)
	if err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	// 4. Storage, index and video backends
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	b, err := openBackends(ctx, cfg, observer)
	if err != nil {
		return nil, fmt.Errorf("failed to open backends: %w", err)
	}

	// 5. Services
	media := service.NewMediaService(cfg, b.blobs, b.index, b.idGen, observer)
	videos := service.NewVideoService(b.videos, b.idGen, observer)
	reconciler := service.NewReconcileService(cfg, b.blobs, b.index)

	// 6. HTTP Server
	httpServer := httpHandler.NewServer(cfg, media, videos, registry)

	return &App{
		cfg:        cfg,
		server:     httpServer,
		backends:   b,
		reconciler: reconciler,
	}, nil
}

// Reconcile runs one reconciliation pass over the configured backends.
func (a *App) Reconcile(ctx context.Context, dryRun bool) (*port.ReconcileReport, error) {
	return a.reconciler.Reconcile(ctx, dryRun)
}

// Close releases backend connections without starting the server.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.backends.Close(ctx)
}

func (a *App) Run() error {
	if a.cfg.Reconcile.OnStart {
		a.reconcileOnStart()
	}

	// Start HTTP
	logger.Infow("CMS server starting", "addr", a.cfg.Server.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("CMS server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down CMS services")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if err := a.backends.Close(ctx); err != nil {
		logger.Errorw("Backend close error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}

func (a *App) reconcileOnStart() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	report, err := a.reconciler.Reconcile(ctx, false)
	if err != nil {
		logger.Errorw("Startup reconcile failed", "error", err.Error())
		return
	}
	if len(report.Errors) > 0 {
		logger.Warnw("Startup reconcile finished with errors", "errors", report.Errors)
	}
}
