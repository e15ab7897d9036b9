package site

import "github.com/okian/porra/pkg/logger"

// Option configures the site handlers.
type Option func(*RootHandler)

// WithLogger sets the logger used for failed runs and renders.
func WithLogger(l logger.Logger) Option {
	return func(h *RootHandler) {
		if l != nil {
			h.logger = l
		}
	}
}
