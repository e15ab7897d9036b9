package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/porra/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// SetupLogging sends logs to stderr, and also to logFile when set. Verbose
// lowers the level to debug.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = io.MultiWriter(os.Stderr, file), file
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)
	return closer, nil
}

// ShowHelp prints usage information for the score tool.
func ShowHelp() {
	os.Stdout.WriteString(`Porra Score Tool
================

Scores a directory of prediction sheets once and prints the leaderboard.

Usage:
  go run ./cmd/score [options]

Options:
  -feed string
        openfootball document: file path or http(s) URL (default: empty schedule)
  -predictions string
        Directory of prediction sheets (default "assets/predictions")
  -glob string
        Sheet file pattern, ** matches subdirectories (default "*.txt")
  -schema string
        Sheet layout: pre_tournament or knockout (default "pre_tournament")
  -champion string
        Force the tournament winner
  -top int
        Rows to print, 0 for all
  -xlsx string
        Also write the leaderboard and grid workbook to this path
  -png string
        Also write the points chart to this path
  -compare string
        Base URL of a running server whose leaderboard must match
  -workers int
        Concurrent scorers (default CPU cores)
  -timeout duration
        Feed and compare request timeout (default 8s)
  -log string
        Also write logs to this file
  -verbose
        Print failing cells and debug logs
  -help
        Show this help message

Examples:
  go run ./cmd/score -feed euro.json -predictions porras/
  go run ./cmd/score -feed https://raw.githubusercontent.com/openfootball/euro.json/master/2024/euro.json -xlsx porra.xlsx
  go run ./cmd/score -feed euro.json -compare http://localhost:9080
`)
}
