// Package scoring compares a decoded prediction sheet with the match catalog
// and produces the point breakdown and one annotation per catalog row.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/sheet"
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/pkg/logger"
)

// Failure is a cell or field that could not be evaluated.
type Failure struct {
	Key string
	Err error
}

// Kind is a short label of the failure cause, for metrics.
func (f Failure) Kind() string {
	switch {
	case errors.Is(f.Err, sheet.ErrMissingField):
		return "missing_field"
	case errors.Is(f.Err, sheet.ErrMalformedGuess):
		return "malformed_guess"
	default:
		return "other"
	}
}

// Result is the outcome of scoring one participant.
type Result struct {
	Row model.ScoreRow
	// Annotations is aligned with the catalog rows.
	Annotations []model.Annotation
	Failures    []Failure
}

// Scorer scores one participant against a catalog.
type Scorer interface {
	// Score only fails when ctx is done; cell failures are part of the Result.
	Score(ctx context.Context, cat *catalog.Catalog, pred *sheet.Prediction) (Result, error)
}

// Engine is the league's Scorer. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	weights Weights
	teams   *teams.Normalizer
	logger  logger.Logger
}

// NewEngine creates an Engine with DefaultWeights.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights,
		teams:   teams.New(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the points table.
func (e *Engine) Weights() Weights { return e.weights }

// run is the state of one Score call.
type run struct {
	cat     *catalog.Catalog
	pred    *sheet.Prediction
	res     *Result
	ordinal map[model.Stage]int
	failed  map[string]bool
}

func (r *run) fail(key string, err error) {
	if r.failed[key] {
		return
	}
	r.failed[key] = true
	r.res.Failures = append(r.res.Failures, Failure{Key: key, Err: err})
}

// Score evaluates every catalog row for pred.
func (e *Engine) Score(ctx context.Context, cat *catalog.Catalog, pred *sheet.Prediction) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res := Result{
		Row:         model.ScoreRow{Name: pred.Name},
		Annotations: make([]model.Annotation, len(cat.Rows)),
	}
	r := &run{cat: cat, pred: pred, res: &res, ordinal: map[model.Stage]int{}, failed: map[string]bool{}}

	for i, m := range cat.Rows {
		var a model.Annotation
		switch {
		case m.Kind == model.RowSeparator:
			a.Class = model.ClassNotApplicable
		case m.Kind == model.RowWinner:
			a = e.winnerCell(r)
		case m.Stage == model.StageGroup:
			a = e.groupCell(r, m)
		default:
			a = e.knockoutCell(r, m)
			e.advancement(r, m)
		}
		a.MatchKey = m.Key
		a.Participant = pred.Name
		if a.Err != nil {
			r.fail(m.Key, a.Err)
		}
		res.Annotations[i] = a
	}
	res.Row.Total = e.weights.Total(res.Row)

	for _, f := range res.Failures {
		e.logger.Debug(ctx, "prediction cell failed",
			logger.String("participant", pred.Name),
			logger.String("key", f.Key),
			logger.Error(f.Err))
	}
	return res, nil
}

// Classify compares a real result with a guess.
func Classify(actual *model.Score, guess model.Score) model.Classification {
	switch {
	case actual == nil:
		return model.ClassPending
	case *actual == guess:
		return model.ClassExact
	case actual.Outcome() == guess.Outcome():
		return model.ClassOutcome
	default:
		return model.ClassMiss
	}
}

func tally(row *model.ScoreRow, c model.Classification) {
	switch c {
	case model.ClassExact:
		row.Exact++
	case model.ClassOutcome:
		row.Outcome++
	}
}

func numericCell(r *run, m model.Match, guess model.Score) model.Annotation {
	a := model.Annotation{Guess: &guess, Class: Classify(m.Result, guess)}
	tally(&r.res.Row, a.Class)
	return a
}

func (e *Engine) groupCell(r *run, m model.Match) model.Annotation {
	g, ok := r.pred.GroupGuess(m.Key)
	if !ok {
		return model.Annotation{Class: model.ClassNotApplicable}
	}
	if g.Err != nil {
		return model.Annotation{Class: model.ClassNotApplicable, Err: g.Err}
	}
	return numericCell(r, m, g.Guess.Score)
}

// knockoutCell scores the guess whose pairing matches the real one. Otherwise
// it shows the pairing guessed at the same position of the stage, marked
// against the stage roster.
func (e *Engine) knockoutCell(r *run, m model.Match) model.Annotation {
	pos := r.ordinal[m.Stage]
	r.ordinal[m.Stage]++

	guesses := r.pred.Knockout[m.Stage]
	for _, g := range guesses {
		if g.Err == nil && g.Guess.Key == m.Pairing() {
			return numericCell(r, m, g.Guess.Score)
		}
	}
	if pos >= len(guesses) {
		return model.Annotation{Class: model.ClassNotApplicable}
	}
	g := guesses[pos]
	if g.Err != nil {
		return model.Annotation{Class: model.ClassNotApplicable, Err: g.Err}
	}
	home, away, ok := strings.Cut(g.Guess.Key, "-")
	if !ok {
		return model.Annotation{
			Class: model.ClassNotApplicable,
			Err:   fmt.Errorf("%w: pairing %q", sheet.ErrMalformedGuess, g.Guess.Key),
		}
	}
	roster := r.cat.Roster(m.Stage)
	return model.Annotation{
		Class: model.ClassNotApplicable,
		Teams: []model.TeamMark{e.mark(home, roster), e.mark(away, roster)},
	}
}

func (e *Engine) mark(name string, roster catalog.Roster) model.TeamMark {
	name = strings.TrimSpace(name)
	t := model.TeamMark{Name: name, Code: e.teams.DisplayCode(name), Decoration: model.Plain}
	switch {
	case roster.Has(name):
		t.Decoration = model.Bold
	case roster.Complete():
		t.Decoration = model.Struck
	}
	return t
}

func (e *Engine) advancement(r *run, m model.Match) {
	row := &r.res.Row
	if m.Stage == model.StageFinal && r.cat.Champion != "" &&
		r.pred.Champion.Err == nil && r.pred.Champion.Name == r.cat.Champion {
		row.Champion = 1
	}

	list := r.pred.Advancers[m.Stage]
	if list.Err != nil {
		r.fail("advancers:"+m.Stage.String(), list.Err)
		return
	}
	hits := 0
	if list.Has(m.Home) {
		hits++
	}
	if list.Has(m.Away) {
		hits++
	}

	switch m.Stage {
	case model.StageRoundOf16:
		row.RoundOf16 += hits
	case model.StageQuarterFinal:
		row.QuarterFinal += hits
	case model.StageSemiFinal:
		row.SemiFinal += hits
	case model.StageFinal:
		row.Finalist += hits
	}
}

func (e *Engine) winnerCell(r *run) model.Annotation {
	pick := r.pred.Champion
	if pick.Err != nil {
		return model.Annotation{Class: model.ClassNotApplicable, Err: pick.Err}
	}
	t := model.TeamMark{Name: pick.Name, Code: e.teams.DisplayCode(pick.Name), Decoration: model.Plain}
	a := model.Annotation{Class: model.ClassPending}
	switch champ := r.cat.Champion; {
	case champ == "":
	case champ == pick.Name:
		t.Decoration, a.Class = model.Bold, model.ClassExact
	default:
		t.Decoration, a.Class = model.Struck, model.ClassMiss
	}
	a.Teams = []model.TeamMark{t}
	return a
}
