// Package repository provides the append-only observation store.
package repository

import (
	"context"

	"github.com/okian/scout/internal/domain/model"
)

// Store provides append and read access to recorded observations.
type Store interface {
	// Insert validates o and appends it, returning the assigned row id.
	// Returns an error wrapping ErrInvalidObservation when o breaks the schema.
	Insert(ctx context.Context, o model.Observation) (int64, error)

	// DistinctTeams lists every team with at least one observation,
	// in the order the team was first recorded.
	DistinctTeams(ctx context.Context) ([]int, error)

	// ObservationsForTeam lists a team's observations in insertion order.
	ObservationsForTeam(ctx context.Context, team int) ([]model.Observation, error)

	// All lists every observation in insertion order.
	All(ctx context.Context) ([]model.Observation, error)

	// Count returns the number of stored observations.
	Count(ctx context.Context) (int, error)

	// Close releases the store. Further calls return ErrClosed.
	Close() error
}
