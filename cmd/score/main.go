package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/porra/internal/adapters/feed"
	"github.com/okian/porra/internal/cli"
	"github.com/okian/porra/internal/domain/sheet"
)

const defaultRunTimeout = 2 * time.Minute

func main() {
	var (
		feedPath    = flag.String("feed", "", "openfootball document: file path or http(s) URL")
		predictions = flag.String("predictions", "assets/predictions", "Directory of prediction sheets")
		glob        = flag.String("glob", "*.txt", "Sheet file pattern")
		schema      = flag.String("schema", sheet.PreTournament.Name, "Sheet layout name")
		champion    = flag.String("champion", "", "Force the tournament winner")
		top         = flag.Int("top", 0, "Rows to print, 0 for all")
		xlsx        = flag.String("xlsx", "", "Workbook output path")
		png         = flag.String("png", "", "Chart output path")
		compare     = flag.String("compare", "", "Base URL of a running server to check against")
		workers     = flag.Int("workers", runtime.NumCPU(), "Concurrent scorers")
		timeout     = flag.Duration("timeout", feed.DefaultTimeout, "Feed and compare request timeout")
		logFile     = flag.String("log", "", "Also write logs to this file")
		verbose     = flag.Bool("verbose", false, "Print failing cells and debug logs")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		cli.ShowHelp()
		return
	}

	closer, err := cli.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &cli.Config{
		Feed:        *feedPath,
		Predictions: *predictions,
		Glob:        *glob,
		Schema:      *schema,
		Champion:    *champion,
		Top:         *top,
		XLSX:        *xlsx,
		PNG:         *png,
		Compare:     *compare,
		Workers:     *workers,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}
	if err := cli.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Scoring failed: " + err.Error() + "\n")
		closer.Close()
		os.Exit(1)
	}
}
