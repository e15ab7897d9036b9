package catalog

import (
	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/pkg/logger"
)

// Option configures a Builder.
type Option func(*Builder)

// WithOverrides replaces the score override table.
func WithOverrides(overrides map[string]model.Score) Option {
	return func(b *Builder) {
		if overrides != nil {
			b.overrides = overrides
		}
	}
}

// WithExtraOverrides merges overrides over the current table.
func WithExtraOverrides(overrides map[string]model.Score) Option {
	return func(b *Builder) {
		merged := make(map[string]model.Score, len(b.overrides)+len(overrides))
		for k, v := range b.overrides {
			merged[k] = v
		}
		for k, v := range overrides {
			merged[k] = v
		}
		b.overrides = merged
	}
}

// WithChampion forces the real champion, given as feed or display name.
func WithChampion(name string) Option {
	return func(b *Builder) { b.champion = name }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}
