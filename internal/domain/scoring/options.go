package scoring

import (
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the points table.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithTeams sets the normalizer used to resolve flag codes.
func WithTeams(n *teams.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.teams = n
		}
	}
}

// WithLogger sets the logger for cell failures.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
