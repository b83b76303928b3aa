package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/scout/internal/domain/model"
)

// maxBodyBytes bounds a POST /observations body.
const maxBodyBytes = 64 << 10

// ObservationDependencies defines the interface for observation reads and writes.
type ObservationDependencies interface {
	Record(ctx context.Context, o model.Observation) (int64, error)
	Observations(ctx context.Context, team int) ([]model.Observation, error)
}

// ObservationsHandler handles observation requests.
type ObservationsHandler struct {
	deps ObservationDependencies
}

// NewObservationsHandler creates a new observations handler.
func NewObservationsHandler(deps ObservationDependencies) *ObservationsHandler {
	return &ObservationsHandler{deps: deps}
}

// observationRequest is the POST /observations body. Tier and card accept a
// name or an ordinal.
type observationRequest struct {
	MatchNumber  int             `json:"match_number"`
	TeamNumber   int             `json:"team_number"`
	Autonomous   json.RawMessage `json:"autonomous"`
	High         int             `json:"high"`
	Middle       int             `json:"middle"`
	Low          int             `json:"low"`
	MinibotPlace int             `json:"minibot_place"`
	Penalties    int             `json:"penalties"`
	Card         json.RawMessage `json:"card"`
	Comment      string          `json:"comment"`
}

func (req observationRequest) observation() (model.Observation, error) {
	o := model.Observation{
		MatchNumber:  req.MatchNumber,
		TeamNumber:   req.TeamNumber,
		High:         req.High,
		Middle:       req.Middle,
		Low:          req.Low,
		MinibotPlace: req.MinibotPlace,
		Penalties:    req.Penalties,
		Comment:      req.Comment,
	}
	auto, err := parseEnum(req.Autonomous, model.ParseAutonomousTier)
	if err != nil {
		return model.Observation{}, err
	}
	card, err := parseEnum(req.Card, model.ParseCardLevel)
	if err != nil {
		return model.Observation{}, err
	}
	o.Autonomous, o.Card = auto, card
	return o, nil
}

// parseEnum decodes a JSON string name or number. An absent value is the zero value.
func parseEnum[T ~int](raw json.RawMessage, parse func(string) (T, error)) (T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
	} else {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
		s = strconv.Itoa(n)
	}
	return parse(s)
}

type createdResponse struct {
	ID int64 `json:"id"`
}

// HandleObservations handles GET /observations?team=N and POST /observations.
func (h *ObservationsHandler) HandleObservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w, "api.observations", http.MethodGet, http.MethodPost)
	}
}

func (h *ObservationsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_observations"
	team := 0
	if raw := r.URL.Query().Get("team"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("team %q must be a positive integer", raw)))
			return
		}
		team = n
	}
	rows, err := h.deps.Observations(r.Context(), team)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if rows == nil {
		rows = []model.Observation{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ObservationsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_observation"
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req observationRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	o, err := req.observation()
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	id, err := h.deps.Record(r.Context(), o)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.Header().Set("Location", "/observations?team="+strconv.Itoa(o.TeamNumber))
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}
