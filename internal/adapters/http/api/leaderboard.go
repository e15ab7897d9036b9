package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/porra/internal/domain/types"
)

// ViewDependencies renders a scoring pass.
type ViewDependencies interface {
	View(ctx context.Context) (types.View, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     ViewDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps ViewDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

type leaderboardResponse struct {
	GeneratedAt string  `json:"generated_at"`
	Source      string  `json:"source"`
	Champion    string  `json:"champion,omitempty"`
	Entries     []Entry `json:"entries"`
}

// HandleGetLeaderboard handles GET /api/leaderboard[?limit=N].
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := h.maxLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	v, err := h.deps.View(r.Context())
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	entries := v.Leaderboard
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{
		GeneratedAt: v.GeneratedAt.Format(time.RFC3339),
		Source:      v.Source,
		Champion:    v.Champion,
		Entries:     entries,
	})
}

// MatchesHandler handles the grid.
type MatchesHandler struct {
	deps ViewDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps ViewDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleGetMatches handles GET /api/matches.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	v, err := h.deps.View(r.Context())
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v.Grid)
}
