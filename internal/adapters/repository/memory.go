package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/metrics"
)

// MemoryStore keeps observations in process memory. It follows the same
// ordering rules as SQLiteStore.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   []model.Observation
	nextID int64
	closed bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Insert validates o and appends it.
func (m *MemoryStore) Insert(ctx context.Context, o model.Observation) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := o.Validate(); err != nil {
		metrics.RecordObservationRejected()
		return 0, err
	}
	defer observeLatency("insert", time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	o.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, o)
	metrics.RecordObservationRecorded()
	return o.ID, nil
}

// DistinctTeams lists teams in first-recorded order.
func (m *MemoryStore) DistinctTeams(ctx context.Context) ([]int, error) {
	if err := m.rlock(ctx); err != nil {
		return nil, err
	}
	defer m.mu.RUnlock()

	seen := make(map[int]struct{})
	teams := make([]int, 0)
	for _, o := range m.rows {
		if _, ok := seen[o.TeamNumber]; ok {
			continue
		}
		seen[o.TeamNumber] = struct{}{}
		teams = append(teams, o.TeamNumber)
	}
	return teams, nil
}

// ObservationsForTeam lists a team's observations in insertion order.
func (m *MemoryStore) ObservationsForTeam(ctx context.Context, team int) ([]model.Observation, error) {
	if err := m.rlock(ctx); err != nil {
		return nil, err
	}
	defer m.mu.RUnlock()

	out := make([]model.Observation, 0)
	for _, o := range m.rows {
		if o.TeamNumber == team {
			out = append(out, o)
		}
	}
	return out, nil
}

// All lists every observation in insertion order.
func (m *MemoryStore) All(ctx context.Context) ([]model.Observation, error) {
	if err := m.rlock(ctx); err != nil {
		return nil, err
	}
	defer m.mu.RUnlock()

	out := slices.Clone(m.rows)
	if out == nil {
		out = make([]model.Observation, 0)
	}
	return out, nil
}

// Count returns the number of stored observations.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := m.rlock(ctx); err != nil {
		return 0, err
	}
	defer m.mu.RUnlock()

	metrics.UpdateObservationCount(len(m.rows))
	return len(m.rows), nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// rlock takes the read lock; the caller releases it on success.
func (m *MemoryStore) rlock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	return nil
}
