// Package types contains the read models served by the adapters.
package types

import "time"

// Entry is one leaderboard row.
type Entry struct {
	Position     int    `json:"position"`
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Exact        int    `json:"exact"`
	Outcome      int    `json:"outcome"`
	RoundOf16    int    `json:"round_of_16"`
	QuarterFinal int    `json:"quarter_final"`
	SemiFinal    int    `json:"semi_final"`
	Finalist     int    `json:"finalist"`
	Champion     int    `json:"champion"`
}

// Team is a team as rendered in the grid.
type Team struct {
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	Flag       string `json:"flag"`
	Decoration string `json:"decoration,omitempty"`
}

// Cell is one participant's evaluated prediction on a grid row.
type Cell struct {
	Participant string `json:"participant"`
	Text        string `json:"text"`
	Class       string `json:"class"`
	Teams       []Team `json:"teams,omitempty"`
	Error       string `json:"error,omitempty"`
}

// GridRow is a match, a stage separator or the champion row.
type GridRow struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Stage  string `json:"stage"`
	Title  string `json:"title,omitempty"`
	Date   string `json:"date,omitempty"`
	Home   *Team  `json:"home,omitempty"`
	Away   *Team  `json:"away,omitempty"`
	Result string `json:"result,omitempty"`
	Cells  []Cell `json:"cells"`
}

// Style colours one cell.
type Style struct {
	MatchKey    string `json:"match_key"`
	Participant string `json:"participant"`
	Class       string `json:"class"`
	Color       string `json:"color"`
}

// Grid is the match by participant table.
type Grid struct {
	Participants []string  `json:"participants"`
	Rows         []GridRow `json:"rows"`
	Styles       []Style   `json:"styles"`
}

// View is everything one scoring run renders.
type View struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Champion    string    `json:"champion,omitempty"`
	Failures    int       `json:"failures"`
	Leaderboard []Entry   `json:"leaderboard"`
	Grid        Grid      `json:"grid"`
}
