package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/okian/passnet/internal/adapters/http/api"
	"github.com/okian/passnet/internal/adapters/http/swagger"
	app "github.com/okian/passnet/internal/app"
	"github.com/okian/passnet/internal/config"
	"github.com/okian/passnet/internal/domain/network"
	"github.com/okian/passnet/pkg/logger"
	"github.com/okian/passnet/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitWith(os.Stdout, logger.Format(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	handler, err := newHandler(ctx, cfg, log)
	if err != nil {
		return err
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newHandler wires the service, the business API and the docs routes.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, error) {
	defaults, err := metricSet(cfg)
	if err != nil {
		return nil, err
	}
	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkers(cfg.Workers),
		app.WithDistanceScale(cfg.DistanceScale),
		app.WithDefaultMetrics(defaults),
		app.WithPitchLength(cfg.PitchLength),
		app.WithPitchWidth(cfg.PitchWidth),
		app.WithLateralMinLength(cfg.LateralMinLengthM),
	)

	r := mux.NewRouter()
	swagger.Register(ctx, r)
	api.NewServer(svc, svc,
		api.WithLogger(log.Named("api")),
		api.WithMaxPasses(cfg.MaxPasses),
	).Register(ctx, r)
	return r, nil
}

// metricSet converts the configured metric names into the service defaults.
func metricSet(cfg *config.Config) (app.MetricSet, error) {
	set := app.MetricSet{
		Strength:     make([]network.Direction, 0, len(cfg.StrengthDirections)),
		Centralities: make([]network.Kind, 0, len(cfg.Centralities)),
	}
	for _, s := range cfg.StrengthDirections {
		d, err := network.ParseDirection(s)
		if err != nil {
			return set, err
		}
		set.Strength = append(set.Strength, d)
	}
	for _, s := range cfg.Centralities {
		k, err := network.ParseKind(s)
		if err != nil {
			return set, err
		}
		set.Centralities = append(set.Centralities, k)
	}
	var err error
	if set.Weight, err = network.ParseEdgeAttribute(cfg.WeightAttribute); err != nil {
		return set, err
	}
	if set.Cost, err = network.ParseEdgeAttribute(cfg.DistanceAttribute); err != nil {
		return set, err
	}
	return set, nil
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
