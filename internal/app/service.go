// Package service runs scoring passes: it resolves the schedule, reads the
// prediction sheets, scores them in parallel and ranks the result.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/porra/internal/adapters/feed"
	"github.com/okian/porra/internal/adapters/present"
	"github.com/okian/porra/internal/adapters/repository"
	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/dedupe"
	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/ranking"
	"github.com/okian/porra/internal/domain/scoring"
	"github.com/okian/porra/internal/domain/sheet"
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/internal/domain/types"
	"github.com/okian/porra/pkg/logger"
	"github.com/okian/porra/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Schedule sources, in fallback order.
const (
	SourceUpstream = "upstream"
	SourceSnapshot = "snapshot"
	SourceSeed     = "seed"
	SourceEmpty    = "empty"
)

var allSources = []string{SourceUpstream, SourceSnapshot, SourceSeed, SourceEmpty}

// Run is the outcome of one scoring pass.
type Run struct {
	GeneratedAt time.Time
	Source      string
	Catalog     *catalog.Catalog
	// Results follow sheet order.
	Results []scoring.Result
	Ranked  []model.ScoreRow
}

// Failures counts failed cells across every participant.
func (r *Run) Failures() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Failures)
	}
	return n
}

// Service implements the API dependencies of the prediction league.
type Service struct {
	mu sync.RWMutex

	upstream feed.Source
	seed     feed.Source
	store    repository.Store
	builder  *catalog.Builder
	parser   *sheet.Parser
	scorer   scoring.Scorer

	predictionsDir  string
	predictionsGlob string
	fixed           []*sheet.Prediction

	workerCount int
	now         func() time.Time

	started bool
	last    runStats

	logger logger.Logger
}

type runStats struct {
	at           time.Time
	source       string
	participants int
	rows         int
	failures     int
	duration     time.Duration
}

// New constructs a Service. Without a feed, a seed and sheets it scores an
// empty league.
func New(opts ...Option) *Service {
	s := &Service{
		predictionsGlob: "*.txt",
		workerCount:     runtime.NumCPU(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.parser == nil {
		s.parser = sheet.NewParser(sheet.PreTournament)
	}
	if s.builder == nil {
		s.builder = catalog.NewBuilder(teams.New(), catalog.WithLogger(s.logger))
	}
	if s.scorer == nil {
		s.scorer = scoring.NewEngine(scoring.WithLogger(s.logger))
	}
	return s
}

// Start checks the sheets directory and opens a memory store when none was
// given.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting scoring service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory snapshot store")
	}
	if s.fixed == nil && s.predictionsDir != "" {
		preds, err := sheet.LoadDir(ctx, s.predictionsDir, s.predictionsGlob, s.parser)
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "prediction sheets found",
			logger.String("dir", s.predictionsDir),
			logger.Int("sheets", len(preds)))
	}

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.Int("workers", s.workerCount),
		logger.String("schema", s.parser.Schema().Name),
		logger.Bool("upstream", s.upstream != nil),
		logger.Bool("seed", s.seed != nil))
	return nil
}

// Stop closes the snapshot store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "close snapshot store", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// Run performs one complete scoring pass. Only context cancellation and
// unreadable sheets fail it; schedule problems fall back to the next source.
func (s *Service) Run(ctx context.Context) (*Run, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	start := time.Now()
	run, err := s.run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordRun("none", "error", float64(elapsed.Milliseconds()))
		return nil, err
	}
	metrics.RecordRun(run.Source, "ok", float64(elapsed.Milliseconds()))
	metrics.SetFeedSource(run.Source, allSources...)
	metrics.UpdateParticipants(len(run.Results))
	metrics.UpdateCatalogRows(len(run.Catalog.Rows))
	if len(run.Ranked) > 0 {
		metrics.UpdateLeaderTotal(run.Ranked[0].Total)
	}

	s.mu.Lock()
	s.last = runStats{
		at:           run.GeneratedAt,
		source:       run.Source,
		participants: len(run.Results),
		rows:         len(run.Catalog.Rows),
		failures:     run.Failures(),
		duration:     elapsed,
	}
	s.mu.Unlock()

	s.logger.Debug(ctx, "scoring run finished",
		logger.String("source", run.Source),
		logger.Int("participants", len(run.Results)),
		logger.Int("rows", len(run.Catalog.Rows)),
		logger.Duration("elapsed", elapsed))
	return run, nil
}

func (s *Service) run(ctx context.Context) (*Run, error) {
	cat, source, err := s.schedule(ctx)
	if err != nil {
		return nil, err
	}
	preds, err := s.predictions(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.scoreAll(ctx, cat, preds)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ScoreRow, len(results))
	for i, r := range results {
		rows[i] = r.Row
		for _, f := range r.Failures {
			metrics.RecordCellError(f.Kind())
		}
	}
	return &Run{
		GeneratedAt: s.now().UTC(),
		Source:      source,
		Catalog:     cat,
		Results:     results,
		Ranked:      ranking.Rank(rows),
	}, nil
}

// schedule builds the catalog from the first source that yields a valid one:
// upstream, the latest snapshot, the seed file, then nothing.
func (s *Service) schedule(ctx context.Context) (*catalog.Catalog, string, error) {
	if s.upstream != nil {
		start := time.Now()
		data, err := s.upstream.Fetch(ctx)
		ms := float64(time.Since(start).Milliseconds())
		if err == nil {
			cat, berr := s.build(ctx, data)
			if berr == nil {
				metrics.RecordFeedFetch("ok", ms)
				s.saveSnapshot(ctx, data)
				return cat, SourceUpstream, nil
			}
			err = berr
			metrics.RecordFeedFetch("invalid", ms)
		} else {
			metrics.RecordFeedFetch("error", ms)
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, "", cerr
		}
		s.logger.Warn(ctx, "upstream feed unusable, falling back",
			logger.String("source", s.upstream.Name()),
			logger.Error(err))
	}

	if snap, err := s.store.Latest(ctx); err == nil {
		cat, berr := s.build(ctx, snap.Body)
		if berr == nil {
			return cat, SourceSnapshot, nil
		}
		s.logger.Warn(ctx, "stored snapshot unusable", logger.Any("id", snap.ID), logger.Error(berr))
	} else if !errors.Is(err, repository.ErrNotFound) {
		metrics.RecordSnapshotError("latest")
		s.logger.Warn(ctx, "read snapshot", logger.Error(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if s.seed != nil {
		data, err := s.seed.Fetch(ctx)
		if err == nil {
			var cat *catalog.Catalog
			if cat, err = s.build(ctx, data); err == nil {
				return cat, SourceSeed, nil
			}
		}
		s.logger.Warn(ctx, "seed feed unusable", logger.String("source", s.seed.Name()), logger.Error(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	s.logger.Warn(ctx, "no schedule available, scoring against an empty catalog")
	cat, err := s.builder.Build(ctx, nil)
	if err != nil {
		return nil, "", err
	}
	return cat, SourceEmpty, nil
}

func (s *Service) build(ctx context.Context, data []byte) (*catalog.Catalog, error) {
	f, err := feed.Decode(data)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(ctx, f.Rounds)
}

func (s *Service) saveSnapshot(ctx context.Context, data []byte) {
	_, saved, err := s.store.Save(ctx, s.upstream.Name(), data)
	switch {
	case err != nil:
		metrics.RecordSnapshotError("save")
		s.logger.Warn(ctx, "save feed snapshot", logger.Error(err))
	case saved:
		metrics.RecordSnapshotSave()
	}
}

// predictions returns the sheets of this run. Sheets arrive with the plain
// file of a name first, so a later sheet whose display name was already taken
// is a copy and is skipped.
func (s *Service) predictions(ctx context.Context) ([]*sheet.Prediction, error) {
	preds := s.fixed
	if preds == nil && s.predictionsDir != "" {
		var err error
		preds, err = sheet.LoadDir(ctx, s.predictionsDir, s.predictionsGlob, s.parser)
		if err != nil {
			return nil, err
		}
	}

	names := dedupe.NewInMemoryDeduper()
	out := make([]*sheet.Prediction, 0, len(preds))
	want := s.parser.Schema().Lines
	for _, p := range preds {
		if names.SeenAndRecord(ctx, p.Name) {
			s.logger.Warn(ctx, "duplicate participant sheet skipped", logger.String("participant", p.Name))
			continue
		}
		if p.Lines != want {
			s.logger.Warn(ctx, "sheet length does not match schema",
				logger.String("participant", p.Name),
				logger.String("schema", p.Schema),
				logger.Int("lines", p.Lines),
				logger.Int("expected", want))
		}
		out = append(out, p)
	}
	return out, nil
}

// scoreAll scores every sheet on at most workerCount goroutines. Each result
// goes to its own slot so sheet order is kept.
func (s *Service) scoreAll(ctx context.Context, cat *catalog.Catalog, preds []*sheet.Prediction) ([]scoring.Result, error) {
	results := make([]scoring.Result, len(preds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i, p := range preds {
		g.Go(func() error {
			start := time.Now()
			res, err := s.scorer.Score(gctx, cat, p)
			if err != nil {
				return fmt.Errorf("score %s: %w", p.Name, err)
			}
			metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// View runs a pass and renders it.
func (s *Service) View(ctx context.Context) (types.View, error) {
	run, err := s.Run(ctx)
	if err != nil {
		return types.View{}, err
	}
	return types.View{
		GeneratedAt: run.GeneratedAt,
		Source:      run.Source,
		Champion:    run.Catalog.Champion,
		Failures:    run.Failures(),
		Leaderboard: present.Leaderboard(run.Ranked),
		Grid:        present.Grid(run.Catalog, run.Results),
	}, nil
}

// Participant runs a pass and returns the ranked row of name.
func (s *Service) Participant(ctx context.Context, name string) (types.Entry, error) {
	run, err := s.Run(ctx)
	if err != nil {
		return types.Entry{}, err
	}
	row, ok := ranking.Find(run.Ranked, name)
	if !ok {
		return types.Entry{}, fmt.Errorf("%w: %q", ErrParticipantNotFound, name)
	}
	return present.Leaderboard([]model.ScoreRow{row})[0], nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"schema":      s.parser.Schema().Name,
	}
	if !s.last.at.IsZero() {
		stats["lastRunAt"] = s.last.at
		stats["lastSource"] = s.last.source
		stats["participants"] = s.last.participants
		stats["catalogRows"] = s.last.rows
		stats["failedCells"] = s.last.failures
		stats["lastRunMs"] = s.last.duration.Milliseconds()
	}
	if s.started && s.store != nil {
		if n, err := s.store.Count(context.Background()); err == nil {
			stats["snapshots"] = n
		}
	}
	return stats
}
