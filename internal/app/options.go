package service

import (
	"time"

	"github.com/okian/porra/internal/adapters/feed"
	"github.com/okian/porra/internal/adapters/repository"
	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/scoring"
	"github.com/okian/porra/internal/domain/sheet"
	"github.com/okian/porra/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount bounds how many sheets are scored at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFeed sets the upstream schedule source.
func WithFeed(src feed.Source) Option {
	return func(s *Service) { s.upstream = src }
}

// WithSeed sets the source used when neither upstream nor a snapshot works.
func WithSeed(src feed.Source) Option {
	return func(s *Service) { s.seed = src }
}

// WithStore sets the snapshot store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithPredictionsDir reads sheets matching pattern under dir on every run.
func WithPredictionsDir(dir, pattern string) Option {
	return func(s *Service) {
		s.predictionsDir = dir
		if pattern != "" {
			s.predictionsGlob = pattern
		}
	}
}

// WithPredictions uses fixed, already decoded sheets instead of a directory.
func WithPredictions(preds []*sheet.Prediction) Option {
	return func(s *Service) { s.fixed = preds }
}

// WithParser sets the sheet parser.
func WithParser(p *sheet.Parser) Option {
	return func(s *Service) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithBuilder sets the catalog builder.
func WithBuilder(b *catalog.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithScorer sets the scorer.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithClock sets the time source of run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
