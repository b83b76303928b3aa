package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
)

const outputFilePermission = 0o600

// Recorder accepts one observation at a time.
type Recorder interface {
	Record(ctx context.Context, o model.Observation) (int64, error)
}

// Stats summarizes a seeding run.
type Stats struct {
	Generated int
	Recorded  int
	Teams     int
	Duration  time.Duration
}

// Run generates observations and records each of them. It stops at the first
// error; Stats reflects what was recorded until then.
func Run(ctx context.Context, rec Recorder, opts Options) (Stats, error) {
	start := time.Now()
	rows := Generate(opts)
	stats := Stats{Generated: len(rows)}

	teams := make(map[int]struct{})
	for _, o := range rows {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("seeding cancelled: %w", err)
		}
		if _, err := rec.Record(ctx, o); err != nil {
			return stats, fmt.Errorf("record match %d team %d: %w", o.MatchNumber, o.TeamNumber, err)
		}
		stats.Recorded++
		teams[o.TeamNumber] = struct{}{}
	}
	stats.Teams = len(teams)
	stats.Duration = time.Since(start)

	logger.Get().Info(ctx, "seeded observations",
		logger.Int("recorded", stats.Recorded),
		logger.Int("teams", stats.Teams),
		logger.Duration("elapsed", stats.Duration))
	return stats, nil
}

// SaveToFile writes rows as indented JSON.
func SaveToFile(path string, rows []model.Observation) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal observations: %w", err)
	}
	if err := os.WriteFile(path, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write observations file: %w", err)
	}
	return nil
}
