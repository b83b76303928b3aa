package api

import (
	"context"
	"net/http"
)

// TeamDependencies defines the interface for listing scouted teams.
type TeamDependencies interface {
	Teams(ctx context.Context) ([]int, error)
}

// TeamsHandler handles team list requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGetTeams handles GET /teams requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if teams == nil {
		teams = []int{}
	}
	writeJSON(w, http.StatusOK, teams)
}
