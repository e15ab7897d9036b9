package repository

import (
	"time"

	"github.com/okian/porra/pkg/logger"
)

// DefaultRetention is how many snapshots are kept.
const DefaultRetention = 5

type options struct {
	retention int
	now       func() time.Time
	logger    logger.Logger
}

func defaultOptions() options {
	return options{retention: DefaultRetention, now: time.Now, logger: logger.Discard()}
}

// Option configures a store.
type Option func(*options)

// WithRetention keeps the n newest snapshots. n <= 0 keeps all of them.
func WithRetention(n int) Option {
	return func(o *options) { o.retention = n }
}

// WithClock sets the time source of FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
