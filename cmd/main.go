package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/okian/porra/internal/adapters/feed"
	"github.com/okian/porra/internal/adapters/http/api"
	"github.com/okian/porra/internal/adapters/http/site"
	"github.com/okian/porra/internal/adapters/http/swagger"
	"github.com/okian/porra/internal/adapters/repository"
	app "github.com/okian/porra/internal/app"
	"github.com/okian/porra/internal/config"
	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/scoring"
	"github.com/okian/porra/internal/domain/sheet"
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/pkg/logger"
	"github.com/okian/porra/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "porra stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	metrics.Configure(metricsOptions(cfg)...)
	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, log),
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
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
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

// newService wires the scoring service from cfg. The caller starts it.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	schema, err := cfg.Schema()
	if err != nil {
		return nil, err
	}
	overrides, err := cfg.Overrides()
	if err != nil {
		return nil, err
	}
	names := teams.New()
	builder := catalog.NewBuilder(names,
		catalog.WithExtraOverrides(overrides),
		catalog.WithChampion(cfg.Champion),
		catalog.WithLogger(log.Named("catalog")),
	)
	engine := scoring.NewEngine(scoring.WithTeams(names), scoring.WithLogger(log.Named("scoring")))

	opts := []app.Option{
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithParser(sheet.NewParser(schema)),
		app.WithBuilder(builder),
		app.WithScorer(engine),
		app.WithPredictionsDir(cfg.PredictionsDir, cfg.PredictionsGlob),
	}
	if cfg.FeedURL != "" {
		client := feed.NewClient(cfg.FeedURL,
			feed.WithTimeout(cfg.FeedTimeout()),
			feed.WithMaxBodySize(cfg.FeedMaxBodyBytes))
		opts = append(opts, app.WithFeed(client))
	}
	if cfg.SeedFeedPath != "" {
		opts = append(opts, app.WithSeed(feed.FileSource{Path: cfg.SeedFeedPath}))
	}
	if cfg.SnapshotDBPath != "" {
		store, err := repository.NewSQLiteStore(ctx, cfg.SnapshotDBPath,
			repository.WithRetention(cfg.SnapshotRetention),
			repository.WithLogger(log.Named("snapshots")))
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithStore(store))
	}
	return app.New(opts...), nil
}

// metricsOptions maps the metrics_* keys onto the collector options.
func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBucketsMS),
		metrics.WithConstLabels(cfg.MetricsLabels),
	}
}

// newHandler mounts every route and wraps them with CORS and request IDs.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	site.Register(ctx, mux, svc, cfg.AssetsDir, site.WithLogger(log.Named("site")))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{api.RequestIDHeader},
	})
	return api.RequestIDMiddleware(c.Handler(mux))
}

// startSystemMetricsUpdater refreshes the process gauges until ctx is done.
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

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
