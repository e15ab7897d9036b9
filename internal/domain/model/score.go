package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Outcome is the 1/X/2 result of a match.
type Outcome string

const (
	HomeWin Outcome = "1"
	Draw    Outcome = "X"
	AwayWin Outcome = "2"
)

// Score is a pair of goal counts.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Outcome returns the outcome symbol given by the sign of the goal difference.
func (s Score) Outcome() Outcome {
	switch d := s.Home - s.Away; {
	case d > 0:
		return HomeWin
	case d < 0:
		return AwayWin
	default:
		return Draw
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%d - %d", s.Home, s.Away)
}

// ParseScore parses "<home><sep><away>". Spaces around the numbers are ignored.
func ParseScore(text, sep string) (Score, error) {
	h, a, ok := strings.Cut(text, sep)
	if !ok {
		return Score{}, fmt.Errorf("%w: %q has no %q", ErrMalformedScore, text, sep)
	}
	home, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || home < 0 {
		return Score{}, fmt.Errorf("%w: home goals in %q", ErrMalformedScore, text)
	}
	away, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || away < 0 {
		return Score{}, fmt.Errorf("%w: away goals in %q", ErrMalformedScore, text)
	}
	return Score{Home: home, Away: away}, nil
}

// ScoreFromPair converts a feed [home, away] pair. ok is false unless it has two
// non-negative values.
func ScoreFromPair(pair []int) (Score, bool) {
	if len(pair) != 2 || pair[0] < 0 || pair[1] < 0 {
		return Score{}, false
	}
	return Score{Home: pair[0], Away: pair[1]}, true
}
