// Package present turns catalog rows, annotations and ranked rows into the
// grid, leaderboard, workbook and chart that the HTTP layer serves.
package present

import (
	"fmt"
	"time"

	"github.com/okian/porra/internal/domain/catalog"
	"github.com/okian/porra/internal/domain/model"
	"github.com/okian/porra/internal/domain/scoring"
	"github.com/okian/porra/internal/domain/teams"
	"github.com/okian/porra/internal/domain/types"
)

// Cell colours of scored predictions.
const (
	ColorExact   = "#92ff9273"
	ColorOutcome = "#ffff0080"
	ColorMiss    = "#ff3e3e59"

	// NotStarted is the result text of a match without a result.
	NotStarted = "Not started"
)

// ClassColor returns the fill colour of a classification.
func ClassColor(c model.Classification) (string, bool) {
	switch c {
	case model.ClassExact:
		return ColorExact, true
	case model.ClassOutcome:
		return ColorOutcome, true
	case model.ClassMiss:
		return ColorMiss, true
	default:
		return "", false
	}
}

var (
	weekdays = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}
	months   = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
)

// FormatKickoff renders t as "Vie, 14 Jun, 21:00".
func FormatKickoff(t time.Time) string {
	return fmt.Sprintf("%s, %02d %s, %02d:%02d",
		weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Hour(), t.Minute())
}

func team(name, code string, deco model.Decoration) *types.Team {
	t := &types.Team{Name: name, Code: code, Flag: teams.FlagAsset(code)}
	if deco != "" && deco != model.Plain {
		t.Decoration = string(deco)
	}
	return t
}

// Grid builds the match by participant table. results must be in participant
// order and aligned with cat.Rows.
func Grid(cat *catalog.Catalog, results []scoring.Result) types.Grid {
	g := types.Grid{
		Participants: make([]string, len(results)),
		Rows:         make([]types.GridRow, len(cat.Rows)),
	}
	for p, res := range results {
		g.Participants[p] = res.Row.Name
	}

	for i, m := range cat.Rows {
		row := types.GridRow{
			Key:   m.Key,
			Kind:  m.Kind.String(),
			Stage: m.Stage.String(),
			Cells: make([]types.Cell, len(results)),
		}
		switch m.Kind {
		case model.RowSeparator:
			row.Title = m.Stage.Title()
		case model.RowWinner:
			row.Title = "Campeón"
			if m.Home != "" {
				row.Home = team(m.Home, m.HomeCode, model.Plain)
			}
		default:
			row.Date = FormatKickoff(m.Kickoff)
			row.Home = team(m.Home, m.HomeCode, model.Plain)
			row.Away = team(m.Away, m.AwayCode, model.Plain)
			row.Result = NotStarted
			if m.Result != nil {
				row.Result = m.Result.String()
			}
		}

		for p, res := range results {
			if i >= len(res.Annotations) {
				continue
			}
			a := res.Annotations[i]
			c := types.Cell{Participant: res.Row.Name, Text: a.Display(), Class: string(a.Class)}
			for _, t := range a.Teams {
				c.Teams = append(c.Teams, *team(t.Name, t.Code, t.Decoration))
			}
			if a.Err != nil {
				c.Error = a.Err.Error()
			}
			row.Cells[p] = c

			if color, ok := ClassColor(a.Class); ok && m.Kind == model.RowMatch {
				g.Styles = append(g.Styles, types.Style{
					MatchKey:    m.Key,
					Participant: res.Row.Name,
					Class:       string(a.Class),
					Color:       color,
				})
			}
		}
		g.Rows[i] = row
	}
	return g
}

// Column is a leaderboard column header.
type Column struct {
	ID    string
	Title string
}

// LeaderboardColumns are the headers of the leaderboard, in order.
var LeaderboardColumns = []Column{
	{ID: "position", Title: "Pos."},
	{ID: "name", Title: "Nombre participante"},
	{ID: "total", Title: "Total ptos"},
	{ID: "exact", Title: "Res. exacto (10 ptos)"},
	{ID: "outcome", Title: "Res. partido (5 ptos)"},
	{ID: "round_of_16", Title: "Eq. octavos (6 ptos)"},
	{ID: "quarter_final", Title: "Eq. cuartos (12 ptos)"},
	{ID: "semi_final", Title: "Eq. semis (24 ptos)"},
	{ID: "finalist", Title: "Eq. final (48 ptos)"},
	{ID: "champion", Title: "Eq. campeón (50 ptos)"},
}

// Leaderboard converts ranked rows.
func Leaderboard(ranked []model.ScoreRow) []types.Entry {
	out := make([]types.Entry, len(ranked))
	for i, r := range ranked {
		out[i] = types.Entry{
			Position:     r.Position,
			Name:         r.Name,
			Total:        r.Total,
			Exact:        r.Exact,
			Outcome:      r.Outcome,
			RoundOf16:    r.RoundOf16,
			QuarterFinal: r.QuarterFinal,
			SemiFinal:    r.SemiFinal,
			Finalist:     r.Finalist,
			Champion:     r.Champion,
		}
	}
	return out
}

// EntryValues returns the cells of e in LeaderboardColumns order.
func EntryValues(e types.Entry) []any {
	return []any{e.Position, e.Name, e.Total, e.Exact, e.Outcome,
		e.RoundOf16, e.QuarterFinal, e.SemiFinal, e.Finalist, e.Champion}
}
