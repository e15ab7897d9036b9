// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/sheet"
)

// SchemaConfig declares an extra sheet layout.
type SchemaConfig struct {
	Lines   int                     `koanf:"lines"`
	Format  *sheet.Format           `koanf:"format"`
	Windows map[string]sheet.Window `koanf:"windows"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`

	// FeedURL is the openfootball document. Empty disables upstream fetches.
	FeedURL       string `koanf:"feed_url"`
	FeedTimeoutMS int    `koanf:"feed_timeout_ms"`
	// FeedMaxBodyBytes caps the fetched document size.
	FeedMaxBodyBytes int `koanf:"feed_max_body_bytes"`
	// SeedFeedPath is read when upstream and the snapshot store both fail.
	SeedFeedPath string `koanf:"seed_feed_path"`
	// SnapshotDBPath is the SQLite file of fetched documents. Empty keeps them in memory.
	SnapshotDBPath    string `koanf:"snapshot_db_path"`
	SnapshotRetention int    `koanf:"snapshot_retention"`

	PredictionsDir  string `koanf:"predictions_dir"`
	PredictionsGlob string `koanf:"predictions_glob"`
	// SheetSchema names the layout of every sheet.
	SheetSchema string                  `koanf:"sheet_schema"`
	Schemas     map[string]SchemaConfig `koanf:"schemas"`
	// SheetFormat overrides the delimiters of the selected schema.
	SheetFormat *sheet.Format `koanf:"sheet_format"`

	// AssetsDir holds flags and other static files.
	AssetsDir string `koanf:"assets_dir"`

	// MetricsNamespace and MetricsSubsystem prefix every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
	// MetricsBucketsMS are the HTTP latency histogram buckets.
	MetricsBucketsMS []float64 `koanf:"metrics_buckets_ms"`

	// WorkerCount bounds concurrent sheet scoring.
	WorkerCount int `koanf:"worker_count"`

	// Champion forces the tournament winner.
	Champion string `koanf:"champion"`
	// ScoreOverrides maps a match key to a "h-a" result, on top of the builtin ones.
	ScoreOverrides map[string]string `koanf:"score_overrides"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		CORSOrigins:       []string{"*"},
		FeedURL:           "https://raw.githubusercontent.com/openfootball/euro.json/master/2024/euro.json",
		FeedTimeoutMS:     8000,
		FeedMaxBodyBytes:  8 << 20,
		SnapshotDBPath:    "porra.db",
		SnapshotRetention: 5,
		PredictionsDir:    "assets/predictions",
		PredictionsGlob:   "*.txt",
		SheetSchema:       sheet.PreTournament.Name,
		AssetsDir:         "assets",
		MetricsNamespace:  "porra",
		MetricsSubsystem:  "scoring",
		MetricsBucketsMS:  []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		WorkerCount:       runtime.NumCPU(),
	}
}

// FeedTimeout is FeedTimeoutMS as a duration.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeoutMS) * time.Millisecond
}

// Schema resolves SheetSchema against the builtin and declared layouts and
// applies SheetFormat.
func (c *Config) Schema() (sheet.Schema, error) {
	extra := make([]sheet.Schema, 0, len(c.Schemas))
	for name, sc := range c.Schemas {
		s := sheet.Schema{
			Name:    name,
			Lines:   sc.Lines,
			Format:  sheet.DefaultFormat,
			Windows: make(map[sheet.Field]sheet.Window, len(sc.Windows)),
		}
		if sc.Format != nil {
			s.Format = *sc.Format
		}
		for f, w := range sc.Windows {
			s.Windows[sheet.Field(f)] = w
		}
		extra = append(extra, s)
	}
	reg, err := sheet.NewRegistry(extra...)
	if err != nil {
		return sheet.Schema{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s, err := reg.Get(c.SheetSchema)
	if err != nil {
		return sheet.Schema{}, fmt.Errorf("%w: sheet_schema: %v (known: %s)",
			ErrInvalidConfig, err, strings.Join(reg.Names(), ", "))
	}
	if c.SheetFormat != nil {
		s.Format = *c.SheetFormat
		if err := s.Validate(); err != nil {
			return sheet.Schema{}, fmt.Errorf("%w: sheet_format: %v", ErrInvalidConfig, err)
		}
	}
	return s, nil
}

// Overrides parses ScoreOverrides.
func (c *Config) Overrides() (map[string]model.Score, error) {
	o, err := catalog.ParseOverrides(c.ScoreOverrides)
	if err != nil {
		return nil, fmt.Errorf("%w: score_overrides: %v", ErrInvalidConfig, err)
	}
	return o, nil
}

// Validate checks required values and that the schema and overrides resolve.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PredictionsDir == "":
		return fmt.Errorf("%w: predictions_dir must not be empty", ErrInvalidConfig)
	case c.FeedTimeoutMS <= 0:
		return fmt.Errorf("%w: feed_timeout_ms must be positive", ErrInvalidConfig)
	case c.FeedMaxBodyBytes <= 0:
		return fmt.Errorf("%w: feed_max_body_bytes must be positive", ErrInvalidConfig)
	case c.MetricsNamespace == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	if _, err := c.Schema(); err != nil {
		return err
	}
	if _, err := c.Overrides(); err != nil {
		return err
	}
	return nil
}
