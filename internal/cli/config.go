// Package cli scores a directory of prediction sheets offline and prints the
// leaderboard.
package cli

import (
	"errors"
	"strings"
	"time"
)

// Error constants.
var (
	ErrNoPredictions = errors.New("no prediction sheets")
	ErrUnsorted      = errors.New("leaderboard out of order")
	ErrMismatch      = errors.New("leaderboard differs from server")
)

// Config holds the options of one scoring run.
type Config struct {
	Feed        string        // Feed file path or http(s) URL; empty scores an empty schedule
	Predictions string        // Directory of prediction sheets
	Glob        string        // Sheet file pattern
	Schema      string        // Sheet layout name
	Champion    string        // Forced tournament winner
	Top         int           // Rows to print, 0 for all
	XLSX        string        // Workbook output path
	PNG         string        // Chart output path
	Compare     string        // Base URL of a running server to check against
	Workers     int           // Concurrent scorers
	Timeout     time.Duration // Feed and compare request timeout
	Verbose     bool          // Print failing cells
}

func (c *Config) remoteFeed() bool {
	return strings.HasPrefix(c.Feed, "http://") || strings.HasPrefix(c.Feed, "https://")
}
