// Package service provides the core business service that implements
// the dependencies required by the CLI and the HTTP view.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/aggregate"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/types"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// ErrNotStarted is returned by operations called before Start or after Stop.
var ErrNotStarted = errors.New("service not started")

// Service records observations and serves team summaries.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	engine *aggregate.Engine

	// Configuration
	dbPath    string
	ownsStore bool

	// State
	started     bool
	lastRefresh time.Duration
	refreshes   int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatabasePath sets the database Start opens when no store is injected.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithStore injects an already opened store. The caller keeps ownership.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath: "scout.db",
		logger: nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the store, unless one was injected, and builds the engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.store == nil {
		store, err := repository.Open(ctx, s.dbPath, repository.WithLogger(s.logger.Named("repository")))
		if err != nil {
			return fmt.Errorf("open observation store: %w", err)
		}
		s.store = store
		s.ownsStore = true
	}
	s.engine = aggregate.NewEngine(s.store, aggregate.WithLogger(s.logger.Named("aggregate")))

	s.started = true
	s.logger.Debug(ctx, "scouting service started",
		logger.String("db", s.dbPath),
		logger.Bool("injectedStore", !s.ownsStore),
	)

	return nil
}

// Stop closes the store if Start opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing observation store", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}

	s.started = false
	s.logger.Debug(context.Background(), "scouting service stopped")
}

func (s *Service) components() (repository.Store, *aggregate.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.engine, nil
}

// Record validates and appends one observation, returning its id.
func (s *Service) Record(ctx context.Context, o model.Observation) (int64, error) {
	store, _, err := s.components()
	if err != nil {
		return 0, err
	}
	id, err := store.Insert(ctx, o)
	if err != nil {
		if errors.Is(err, model.ErrInvalidObservation) {
			s.logger.Debug(ctx, "observation rejected", logger.Error(err))
		} else {
			s.logger.Error(ctx, "failed to record observation", logger.Error(err))
		}
		return 0, err
	}
	s.logger.Info(ctx, "observation recorded",
		logger.Int64("id", id),
		logger.Int("team", o.TeamNumber),
		logger.Int("match", o.MatchNumber),
	)
	return id, nil
}

// Summaries recomputes every team summary and ranks them. An empty sortBy
// keeps the store's team order.
func (s *Service) Summaries(ctx context.Context, sortBy string, desc bool) ([]types.Entry, error) {
	_, engine, err := s.components()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summaries, err := engine.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh summaries: %w", err)
	}
	s.mu.Lock()
	s.lastRefresh = time.Since(start)
	s.refreshes++
	s.mu.Unlock()

	sorted, err := aggregate.SortSummaries(summaries, sortBy, desc)
	if err != nil {
		return nil, err
	}
	return types.Rank(sorted), nil
}

// Observations lists a team's observations, or every observation when team
// is zero.
func (s *Service) Observations(ctx context.Context, team int) ([]model.Observation, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	if team == 0 {
		return store.All(ctx)
	}
	return store.ObservationsForTeam(ctx, team)
}

// Teams lists every scouted team in first-recorded order.
func (s *Service) Teams(ctx context.Context) ([]int, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.DistinctTeams(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	stats := map[string]interface{}{
		"started":   s.started,
		"dbPath":    s.dbPath,
		"refreshes": s.refreshes,
	}
	if s.refreshes > 0 {
		stats["lastRefreshMs"] = float64(s.lastRefresh.Microseconds()) / 1000
	}
	store := s.store
	started := s.started
	s.mu.RUnlock()

	if !started {
		return stats
	}

	if n, err := store.Count(ctx); err == nil {
		stats["observations"] = n
	} else {
		s.logger.Warn(ctx, "stats: count observations", logger.Error(err))
	}
	if teams, err := store.DistinctTeams(ctx); err == nil {
		stats["teams"] = len(teams)
		metrics.UpdateTeamCount(len(teams))
	} else {
		s.logger.Warn(ctx, "stats: list teams", logger.Error(err))
	}

	return stats
}
