// Package ranking orders scored participants into the leaderboard.
package ranking

import (
	"sort"

	"github.com/okian/porra/internal/domain/model"
)

// Rank returns rows sorted by total, highest first, with dense positions:
// equal totals share a position and the next total takes the next one
// (50, 42, 42, 30 rank 1, 2, 2, 3). Ties keep their input order. rows is not
// modified.
func Rank(rows []model.ScoreRow) []model.ScoreRow {
	out := make([]model.ScoreRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })

	pos := 0
	for i := range out {
		if i == 0 || out[i].Total != out[i-1].Total {
			pos++
		}
		out[i].Position = pos
	}
	return out
}

// Find returns the ranked row of name.
func Find(ranked []model.ScoreRow, name string) (model.ScoreRow, bool) {
	for _, r := range ranked {
		if r.Name == name {
			return r, true
		}
	}
	return model.ScoreRow{}, false
}
