package api

import (
	"context"
	"net/http"
	"strings"
)

// ParticipantDependencies looks up one ranked participant.
type ParticipantDependencies interface {
	Participant(ctx context.Context, name string) (Entry, error)
}

// ParticipantHandler handles participant requests.
type ParticipantHandler struct {
	deps ParticipantDependencies
}

// NewParticipantHandler creates a new participant handler.
func NewParticipantHandler(deps ParticipantDependencies) *ParticipantHandler {
	return &ParticipantHandler{deps: deps}
}

// HandleGetParticipant handles GET /api/participants/{name}.
func (h *ParticipantHandler) HandleGetParticipant(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_participant"
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Participant(r.Context(), name)
	if err != nil {
		writeFailure(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
