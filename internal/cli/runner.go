package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/okian/porra/internal/adapters/feed"
	"github.com/okian/porra/internal/adapters/present"
	app "github.com/okian/porra/internal/app"
	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/scoring"
	"github.com/okian/porra/internal/domain/sheet"
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/internal/domain/types"
	"github.com/okian/porra/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0o644
)

// Run scores every sheet once and writes the leaderboard to out.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	log := logger.Get()
	reg, err := sheet.NewRegistry()
	if err != nil {
		return err
	}
	schema, err := reg.Get(cfg.Schema)
	if err != nil {
		return err
	}

	names := teams.New()
	opts := []app.Option{
		app.WithLogger(log),
		app.WithWorkerCount(cfg.Workers),
		app.WithParser(sheet.NewParser(schema)),
		app.WithBuilder(catalog.NewBuilder(names, catalog.WithChampion(cfg.Champion), catalog.WithLogger(log))),
		app.WithScorer(scoring.NewEngine(scoring.WithTeams(names), scoring.WithLogger(log))),
		app.WithPredictionsDir(cfg.Predictions, cfg.Glob),
	}
	switch {
	case cfg.remoteFeed():
		opts = append(opts, app.WithFeed(feed.NewClient(cfg.Feed, feed.WithTimeout(cfg.Timeout))))
	case cfg.Feed != "":
		opts = append(opts, app.WithSeed(feed.FileSource{Path: cfg.Feed}))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer svc.Stop()

	v, err := svc.View(ctx)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if len(v.Leaderboard) == 0 {
		return fmt.Errorf("%w in %s", ErrNoPredictions, cfg.Predictions)
	}
	if err := verifyLeaderboard(v.Leaderboard); err != nil {
		return err
	}

	log.Info(ctx, "scored prediction sheets",
		logger.String("source", v.Source),
		logger.Int("participants", len(v.Leaderboard)),
		logger.Int("failedCells", v.Failures))
	if cfg.Verbose {
		displayFailures(out, v.Grid)
	}
	if err := printLeaderboard(out, v, cfg.Top); err != nil {
		return err
	}

	if cfg.XLSX != "" {
		if err := writeFile(cfg.XLSX, func(w io.Writer) error { return present.WriteXLSX(w, v) }); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		log.Info(ctx, "workbook written", logger.String("path", cfg.XLSX))
	}
	if cfg.PNG != "" {
		if err := writeFile(cfg.PNG, func(w io.Writer) error { return present.RenderChart(w, v.Leaderboard) }); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		log.Info(ctx, "chart written", logger.String("path", cfg.PNG))
	}

	if cfg.Compare != "" {
		remote, err := fetchLeaderboard(ctx, cfg.Compare, cfg)
		if err != nil {
			return fmt.Errorf("compare: %w", err)
		}
		if err := compareLeaderboards(v.Leaderboard, remote); err != nil {
			return err
		}
		log.Info(ctx, "leaderboard matches server", logger.String("url", cfg.Compare))
	}
	return nil
}

// printLeaderboard writes the table under the league column titles.
func printLeaderboard(out io.Writer, v types.View, top int) error {
	fmt.Fprintf(out, "Fuente: %s", v.Source)
	if v.Champion != "" {
		fmt.Fprintf(out, " · Campeón: %s", v.Champion)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	titles := make([]string, len(present.LeaderboardColumns))
	for i, c := range present.LeaderboardColumns {
		titles[i] = c.Title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t")+"\t")
	for i, e := range v.Leaderboard {
		if top > 0 && i >= top {
			break
		}
		vals := present.EntryValues(e)
		cells := make([]string, len(vals))
		for j, val := range vals {
			cells[j] = fmt.Sprint(val)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

// displayFailures lists the cells that could not be evaluated.
func displayFailures(out io.Writer, g types.Grid) {
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if c.Error != "" {
				fmt.Fprintf(out, "! %s %s: %s\n", c.Participant, row.Key, c.Error)
			}
		}
	}
}

// fetchLeaderboard reads /api/leaderboard of a running server.
func fetchLeaderboard(ctx context.Context, baseURL string, cfg *Config) ([]types.Entry, error) {
	url := strings.TrimRight(baseURL, "/") + "/api/leaderboard"
	body, err := feed.NewClient(url, feed.WithTimeout(cfg.Timeout)).Fetch(ctx)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Entries []types.Entry `json:"entries"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return resp.Entries, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), outputFilePermission)
}
