// Package api declares HTTP contracts and route registration helpers for the
// local summary view.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/scout/internal/adapters/http/swagger"
	"github.com/okian/scout/internal/domain/aggregate"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/types"
	"github.com/okian/scout/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SummaryDependencies
	ObservationDependencies
	TeamDependencies
}

// Entry mirrors the read shape returned by summary queries.
type Entry = types.Entry

// Server wires HTTP routes for the scouting view.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	summariesHandler    *SummariesHandler
	observationsHandler *ObservationsHandler
	teamsHandler        *TeamsHandler
	indexHandler        *indexHandler
	logger              logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithDefaultSort sets the summary order used when a request names none.
func WithDefaultSort(key string, desc bool) ServerOption {
	return func(s *Server) {
		s.summariesHandler.defaultSort = key
		s.summariesHandler.defaultDesc = desc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		summariesHandler:    NewSummariesHandler(deps),
		observationsHandler: NewObservationsHandler(deps),
		teamsHandler:        NewTeamsHandler(deps),
		indexHandler:        newIndexHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summaries", MetricsMiddleware(s.summariesHandler.HandleGetSummaries, "summaries"))
	mux.HandleFunc("/observations", MetricsMiddleware(s.observationsHandler.HandleObservations, "observations"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
	swagger.Register(ctx, mux)
	mux.HandleFunc("/", s.indexHandler.HandleIndex)
}

// Handler returns a mux with every route registered, wrapped with request ids.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return RequestIDMiddleware(mux, s.logger)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err to a status and error code.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidObservation):
		writeError(w, http.StatusBadRequest, "invalid_observation", err)
	case errors.Is(err, aggregate.ErrUnknownSortKey):
		writeError(w, http.StatusBadRequest, "unknown_sort_key", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrMethodNotAllowed):
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func methodNotAllowed(w http.ResponseWriter, op string, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	writeFailure(w, NewKind(op, ErrMethodNotAllowed))
}
