package api

import (
	"context"
	"net/http"
	"strconv"
)

// SummaryDependencies defines the interface for summary reads.
type SummaryDependencies interface {
	Summaries(ctx context.Context, sortBy string, desc bool) ([]Entry, error)
}

// SummariesHandler handles summary requests.
type SummariesHandler struct {
	deps        SummaryDependencies
	defaultSort string
	defaultDesc bool
}

// NewSummariesHandler creates a new summaries handler.
func NewSummariesHandler(deps SummaryDependencies) *SummariesHandler {
	return &SummariesHandler{deps: deps}
}

// HandleGetSummaries handles GET /summaries?sort=COL&desc=BOOL requests.
// Every request recomputes the summaries from the store.
func (h *SummariesHandler) HandleGetSummaries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summaries"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	q := r.URL.Query()
	sortBy, desc := h.defaultSort, h.defaultDesc
	if q.Has("sort") {
		sortBy = q.Get("sort")
	}
	if raw := q.Get("desc"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		desc = v
	}
	entries, err := h.deps.Summaries(r.Context(), sortBy, desc)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
