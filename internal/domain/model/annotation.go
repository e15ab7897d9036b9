package model

import "strings"

// Classification tags a grid cell.
type Classification string

const (
	ClassExact         Classification = "exact"
	ClassOutcome       Classification = "correct_outcome"
	ClassMiss          Classification = "miss"
	ClassPending       Classification = "pending"
	ClassNotApplicable Classification = "not_applicable"
)

// Decoration is how a predicted team is shown against reality.
type Decoration string

const (
	Plain  Decoration = "plain"
	Bold   Decoration = "bold"
	Struck Decoration = "struck"
)

// TeamMark is a predicted team with its decoration.
type TeamMark struct {
	Name       string     `json:"name"`
	Code       string     `json:"code,omitempty"`
	Decoration Decoration `json:"decoration"`
}

// Annotation is the evaluated cell of one participant on one catalog row.
type Annotation struct {
	MatchKey    string
	Participant string
	Guess       *Score
	Teams       []TeamMark
	Class       Classification
	Err         error
}

// Failed reports whether the cell could not be evaluated.
func (a Annotation) Failed() bool { return a.Err != nil }

// Display is the plain text of the cell.
func (a Annotation) Display() string {
	switch {
	case a.Err != nil:
		return "error"
	case a.Guess != nil:
		return a.Guess.String()
	case len(a.Teams) > 0:
		names := make([]string, len(a.Teams))
		for i, t := range a.Teams {
			names[i] = t.Name
		}
		return strings.Join(names, " - ")
	default:
		return ""
	}
}

// ScoreRow is the point breakdown of one participant.
type ScoreRow struct {
	Name         string
	Exact        int
	Outcome      int
	RoundOf16    int
	QuarterFinal int
	SemiFinal    int
	Finalist     int
	Champion     int
	Total        int
	Position     int
}
