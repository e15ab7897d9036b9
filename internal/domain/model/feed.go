package model

// Feed is the openfootball tournament document.
type Feed struct {
	Name   string  `json:"name"`
	Rounds []Round `json:"rounds"`
}

// Round is an ordered group of matches of the feed.
type Round struct {
	Name    string     `json:"name"`
	Matches []RawMatch `json:"matches"`
}

// RawMatch is one feed match before normalization.
type RawMatch struct {
	Num    int       `json:"num,omitempty"`
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Team1  RawTeam   `json:"team1"`
	Team2  RawTeam   `json:"team2"`
	Score  *RawScore `json:"score,omitempty"`
	Group  string    `json:"group,omitempty"`
	Ground string    `json:"ground,omitempty"`
}

// RawTeam is a feed team reference.
type RawTeam struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// RawScore holds full time, extra time and penalty pairs.
type RawScore struct {
	FT []int `json:"ft,omitempty"`
	ET []int `json:"et,omitempty"`
	P  []int `json:"p,omitempty"`
}
