package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Reader is the read side of the observation store used by a refresh.
type Reader interface {
	// DistinctTeams lists every team with at least one observation.
	DistinctTeams(ctx context.Context) ([]int, error)
	// ObservationsForTeam lists all observations recorded for team.
	ObservationsForTeam(ctx context.Context, team int) ([]model.Observation, error)
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the logger used for refresh diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine recomputes team summaries from the full store on every refresh.
// There is no caching; each call is a full scan.
type Engine struct {
	reader Reader
	logger logger.Logger
}

// NewEngine creates an engine reading from r.
func NewEngine(r Reader, opts ...Option) *Engine {
	e := &Engine{reader: r}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("aggregate")
	}
	return e
}

// Load materializes the grouping the fold runs over, in the store's team order.
func (e *Engine) Load(ctx context.Context) ([]TeamGroup, error) {
	teams, err := e.reader.DistinctTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	groups := make([]TeamGroup, 0, len(teams))
	for _, team := range teams {
		obs, err := e.reader.ObservationsForTeam(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("list observations for team %d: %w", team, err)
		}
		groups = append(groups, TeamGroup{TeamNumber: team, Observations: obs})
	}
	return groups, nil
}

// Refresh loads every observation and returns one summary per team.
func (e *Engine) Refresh(ctx context.Context) ([]model.TeamSummary, error) {
	start := time.Now()
	groups, err := e.Load(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("aggregate", "load")
		return nil, err
	}
	summaries := ComputeSummaries(groups)

	undefined := 0
	for _, s := range summaries {
		if !s.AvgMinibotPlace.Valid {
			undefined++
		}
	}
	elapsed := time.Since(start)
	metrics.RecordRefreshDuration(float64(elapsed.Microseconds()) / 1000)
	metrics.UpdateTeamCount(len(summaries))
	e.logger.Debug(ctx, "refreshed team summaries",
		logger.Int("teams", len(summaries)),
		logger.Int("no_minibot_attempts", undefined),
		logger.Duration("elapsed", elapsed),
	)
	return summaries, nil
}
