package scoring

import "github.com/okian/porra/internal/domain/model"

// Weights are the points awarded per hit of each category.
type Weights struct {
	Exact        int `json:"exact"`
	Outcome      int `json:"outcome"`
	RoundOf16    int `json:"round_of_16"`
	QuarterFinal int `json:"quarter_final"`
	SemiFinal    int `json:"semi_final"`
	Finalist     int `json:"finalist"`
	Champion     int `json:"champion"`
}

// DefaultWeights is the league's points table.
var DefaultWeights = Weights{
	Exact:        10,
	Outcome:      5,
	RoundOf16:    6,
	QuarterFinal: 12,
	SemiFinal:    24,
	Finalist:     48,
	Champion:     50,
}

// Total is the weighted sum of the counts of r.
func (w Weights) Total(r model.ScoreRow) int {
	return r.Exact*w.Exact +
		r.Outcome*w.Outcome +
		r.RoundOf16*w.RoundOf16 +
		r.QuarterFinal*w.QuarterFinal +
		r.SemiFinal*w.SemiFinal +
		r.Finalist*w.Finalist +
		r.Champion*w.Champion
}
