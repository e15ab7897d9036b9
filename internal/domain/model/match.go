// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Stage is the tournament phase a match belongs to.
type Stage int

const (
	StageGroup Stage = iota
	StageRoundOf16
	StageQuarterFinal
	StageSemiFinal
	StageFinal
)

// KnockoutStages lists the knockout stages in tournament order.
var KnockoutStages = []Stage{StageRoundOf16, StageQuarterFinal, StageSemiFinal, StageFinal}

func (s Stage) String() string {
	switch s {
	case StageGroup:
		return "group"
	case StageRoundOf16:
		return "round_of_16"
	case StageQuarterFinal:
		return "quarter_final"
	case StageSemiFinal:
		return "semi_final"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Title is the display heading of the stage.
func (s Stage) Title() string {
	switch s {
	case StageGroup:
		return "Fase de grupos"
	case StageRoundOf16:
		return "Octavos de final"
	case StageQuarterFinal:
		return "Cuartos de final"
	case StageSemiFinal:
		return "Semifinales"
	case StageFinal:
		return "Final"
	default:
		return ""
	}
}

// IsKnockout reports whether s is played as single elimination.
func (s Stage) IsKnockout() bool { return s >= StageRoundOf16 && s <= StageFinal }

// StageOf maps a feed round name to its stage.
func StageOf(round string) (Stage, bool) {
	name := strings.ToLower(strings.TrimSpace(round))
	switch {
	case strings.HasPrefix(name, "matchday"):
		return StageGroup, true
	case name == "round of 16":
		return StageRoundOf16, true
	case name == "quarter-final", name == "quarter-finals":
		return StageQuarterFinal, true
	case name == "semi-final", name == "semi-finals":
		return StageSemiFinal, true
	case name == "final":
		return StageFinal, true
	default:
		return 0, false
	}
}

// RowKind tells real matches apart from synthetic catalog rows.
type RowKind int

const (
	RowMatch RowKind = iota
	RowSeparator
	RowWinner
)

func (k RowKind) String() string {
	switch k {
	case RowSeparator:
		return "separator"
	case RowWinner:
		return "winner"
	default:
		return "match"
	}
}

// Match is one catalog row. Separator and winner rows only carry Kind, Stage
// and Key; the winner row also carries the champion in Home.
type Match struct {
	Kind     RowKind
	Key      string
	Stage    Stage
	Home     string
	Away     string
	HomeCode string
	AwayCode string
	Kickoff  time.Time
	Result   *Score
}

// Pairing is the "Home-Away" label used by guesses.
func (m Match) Pairing() string {
	return Pairing(m.Home, m.Away)
}

// Started reports whether a real result is known.
func (m Match) Started() bool { return m.Result != nil }

// Pairing joins two display names the way sheets write them.
func Pairing(home, away string) string {
	return home + "-" + away
}
