// Package catalog folds the feed rounds into the ordered match catalog that
// every participant is scored against.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/porra/internal/domain/dedupe"
	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/pkg/logger"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// WinnerKey is the key of the synthetic champion row.
	WinnerKey = "winner"
)

// Roster is the set of real teams that play a knockout stage.
type Roster struct {
	teams   map[string]struct{}
	pending bool
}

// Has reports whether name plays the stage.
func (r Roster) Has(name string) bool {
	_, ok := r.teams[name]
	return ok
}

// Complete reports whether every team of the stage is known.
func (r Roster) Complete() bool { return !r.pending && len(r.teams) > 0 }

func (r *Roster) add(name string) {
	if teams.IsPlaceholder(name) {
		r.pending = true
		return
	}
	if r.teams == nil {
		r.teams = make(map[string]struct{})
	}
	r.teams[name] = struct{}{}
}

// Catalog is the read-only result of one build.
type Catalog struct {
	Rows          []model.Match
	Rosters       map[model.Stage]Roster
	Champion      string
	SkippedRounds []string
}

// Roster returns the roster of stage; the zero Roster when the stage is absent.
func (c *Catalog) Roster(stage model.Stage) Roster {
	return c.Rosters[stage]
}

// Builder turns feed rounds into a Catalog.
type Builder struct {
	teams     *teams.Normalizer
	overrides map[string]model.Score
	champion  string
	logger    logger.Logger
}

// NewBuilder creates a Builder using the default score overrides.
func NewBuilder(names *teams.Normalizer, opts ...Option) *Builder {
	b := &Builder{
		teams:     names,
		overrides: DefaultOverrides(),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type parsedMatch struct {
	raw     model.RawMatch
	kickoff time.Time
	clock   string
	seq     int
}

// foldState is carried across rounds.
type foldState struct {
	last      model.Stage
	haveLast  bool
	separated map[model.Stage]bool
	finalSeen bool
	rosters   map[model.Stage]*Roster
	champion  string
}

// Build folds rounds in feed order. A malformed date or time fails the whole
// build with ErrMalformedSchedule.
func (b *Builder) Build(ctx context.Context, rounds []model.Round) (*Catalog, error) {
	seen := dedupe.NewInMemoryDeduper()
	st := foldState{
		separated: make(map[model.Stage]bool),
		rosters:   make(map[model.Stage]*Roster),
	}
	cat := &Catalog{}

	for _, round := range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stage, ok := model.StageOf(round.Name)
		if !ok {
			cat.SkippedRounds = append(cat.SkippedRounds, round.Name)
			b.logger.Debug(ctx, "skipping unknown round", logger.String("round", round.Name))
			continue
		}
		if stage == model.StageFinal {
			st.finalSeen = true
		}

		parsed, err := parseRound(round)
		if err != nil {
			return nil, err
		}

		for _, pm := range parsed {
			row := b.toRow(stage, pm)
			if stage.IsKnockout() {
				r := st.rosters[stage]
				if r == nil {
					r = &Roster{}
					st.rosters[stage] = r
				}
				r.add(row.Home)
				r.add(row.Away)
			}

			if o, ok := b.overrides[row.Key]; ok {
				row.Result = &o
			}
			if teams.IsPlaceholder(row.Home) || teams.IsPlaceholder(row.Away) {
				continue
			}
			if seen.SeenAndRecord(ctx, row.Key) {
				continue
			}

			if stage.IsKnockout() && (!st.haveLast || st.last != stage) && !st.separated[stage] {
				st.separated[stage] = true
				cat.Rows = append(cat.Rows, model.Match{
					Kind:  model.RowSeparator,
					Key:   "separator:" + stage.String(),
					Stage: stage,
				})
			}
			st.last, st.haveLast = stage, true
			cat.Rows = append(cat.Rows, row)

			if stage == model.StageFinal {
				if w := b.winnerOf(row, pm.raw.Score); w != "" {
					st.champion = w
				}
			}
		}
	}

	cat.Champion = st.champion
	if b.champion != "" {
		cat.Champion = b.teams.ToDisplay(b.champion)
	}
	if st.finalSeen {
		cat.Rows = append(cat.Rows, model.Match{
			Kind:     model.RowWinner,
			Key:      WinnerKey,
			Stage:    model.StageFinal,
			Home:     cat.Champion,
			HomeCode: b.teams.DisplayCode(cat.Champion),
		})
	}

	cat.Rosters = make(map[model.Stage]Roster, len(st.rosters))
	for stage, r := range st.rosters {
		cat.Rosters[stage] = *r
	}
	return cat, nil
}

func (b *Builder) toRow(stage model.Stage, pm parsedMatch) model.Match {
	home := b.teams.ToDisplay(strings.TrimSpace(pm.raw.Team1.Name))
	away := b.teams.ToDisplay(strings.TrimSpace(pm.raw.Team2.Name))

	row := model.Match{
		Kind:     model.RowMatch,
		Stage:    stage,
		Home:     home,
		Away:     away,
		HomeCode: codeOf(b.teams, pm.raw.Team1),
		AwayCode: codeOf(b.teams, pm.raw.Team2),
		Kickoff:  pm.kickoff,
	}
	switch stage {
	case model.StageGroup:
		row.Key = model.Pairing(home, away)
	case model.StageSemiFinal:
		row.Key = fmt.Sprintf("%s %s #%d", pm.raw.Date, pm.clock, pm.seq)
	default:
		row.Key = pm.raw.Date + " " + pm.clock
	}
	if pm.raw.Score != nil {
		if s, ok := model.ScoreFromPair(pm.raw.Score.FT); ok {
			row.Result = &s
		}
	}
	return row
}

// winnerOf decides the final by penalties, then extra time, then full time.
func (b *Builder) winnerOf(row model.Match, raw *model.RawScore) string {
	var decisive []model.Score
	if raw != nil {
		for _, pair := range [][]int{raw.P, raw.ET} {
			if s, ok := model.ScoreFromPair(pair); ok {
				decisive = append(decisive, s)
			}
		}
	}
	if row.Result != nil {
		decisive = append(decisive, *row.Result)
	}
	for _, s := range decisive {
		switch s.Outcome() {
		case model.HomeWin:
			return row.Home
		case model.AwayWin:
			return row.Away
		}
	}
	return ""
}

func codeOf(names *teams.Normalizer, t model.RawTeam) string {
	if c := strings.TrimSpace(t.Code); c != "" {
		return strings.ToUpper(c)
	}
	c, err := names.CodeOf(strings.TrimSpace(t.Name))
	if err != nil {
		return ""
	}
	return c
}

// parseRound parses kickoffs and stable-sorts the round by them.
func parseRound(round model.Round) ([]parsedMatch, error) {
	out := make([]parsedMatch, 0, len(round.Matches))
	for i, m := range round.Matches {
		kickoff, clock, err := parseKickoff(m.Date, m.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: round %q match %d: %v", ErrMalformedSchedule, round.Name, i+1, err)
		}
		seq := m.Num
		if seq == 0 {
			seq = i + 1
		}
		out = append(out, parsedMatch{raw: m, kickoff: kickoff, clock: clock, seq: seq})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].kickoff.Before(out[j].kickoff) })
	return out, nil
}

// parseKickoff reads "YYYY-MM-DD" and "HH:MM" with an optional " UTC±H" suffix.
// Times without a zone are taken as UTC.
func parseKickoff(date, clockText string) (time.Time, string, error) {
	fields := strings.Fields(clockText)
	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, "", fmt.Errorf("bad time %q", clockText)
	}
	loc := time.UTC
	if len(fields) == 2 {
		var err error
		if loc, err = parseZone(fields[1]); err != nil {
			return time.Time{}, "", err
		}
	}
	if _, err := time.Parse(clockLayout, fields[0]); err != nil {
		return time.Time{}, "", fmt.Errorf("bad time %q", clockText)
	}
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, strings.TrimSpace(date)+" "+fields[0], loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("bad date %q", date)
	}
	return t, fields[0], nil
}

func parseZone(zone string) (*time.Location, error) {
	rest, ok := strings.CutPrefix(zone, "UTC")
	if !ok {
		return nil, fmt.Errorf("bad zone %q", zone)
	}
	if rest == "" {
		return time.UTC, nil
	}
	hours, err := strconv.Atoi(rest)
	if err != nil || hours < -12 || hours > 14 {
		return nil, fmt.Errorf("bad zone %q", zone)
	}
	return time.FixedZone(zone, hours*3600), nil
}
