package cli

import (
	"fmt"

	"github.com/okian/porra/internal/domain/types"
)

// verifyLeaderboard checks totals never increase down the table and that
// positions are dense: ties share one and the next total takes the next.
func verifyLeaderboard(entries []types.Entry) error {
	for i := range entries {
		if i == 0 {
			if entries[0].Position != 1 {
				return fmt.Errorf("%w: first position is %d", ErrUnsorted, entries[0].Position)
			}
			continue
		}
		prev, cur := entries[i-1], entries[i]
		if cur.Total > prev.Total {
			return fmt.Errorf("%w: %s (%d) above %s (%d)", ErrUnsorted, prev.Name, prev.Total, cur.Name, cur.Total)
		}
		want := prev.Position + 1
		if cur.Total == prev.Total {
			want = prev.Position
		}
		if cur.Position != want {
			return fmt.Errorf("%w: %s at position %d, want %d", ErrUnsorted, cur.Name, cur.Position, want)
		}
	}
	return nil
}

// compareLeaderboards checks a server leaderboard against the local one by
// name, position and total.
func compareLeaderboards(local, remote []types.Entry) error {
	if len(local) != len(remote) {
		return fmt.Errorf("%w: %d participants locally, %d on server", ErrMismatch, len(local), len(remote))
	}
	byName := make(map[string]types.Entry, len(remote))
	for _, e := range remote {
		byName[e.Name] = e
	}
	for _, l := range local {
		r, ok := byName[l.Name]
		switch {
		case !ok:
			return fmt.Errorf("%w: %s missing on server", ErrMismatch, l.Name)
		case r.Total != l.Total:
			return fmt.Errorf("%w: %s has %d points on server, %d locally", ErrMismatch, l.Name, r.Total, l.Total)
		case r.Position != l.Position:
			return fmt.Errorf("%w: %s at position %d on server, %d locally", ErrMismatch, l.Name, r.Position, l.Position)
		}
	}
	return nil
}
