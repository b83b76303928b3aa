package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

//go:embed schema.sql
var schema string

const observationColumns = `id, match_number, team_number, autonomous, high, middle, low,
	minibot_place, penalties, card, comment`

// SQLiteStore persists observations in a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logger.Logger
	closed atomic.Bool
}

var _ Store = (*SQLiteStore)(nil)

// Create makes a new database at path. An existing file is replaced only when
// overwrite is set; otherwise ErrDatabaseExists is returned.
func Create(ctx context.Context, path string, overwrite bool, opts ...Option) (*SQLiteStore, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if path != MemoryPath {
		if _, err := os.Stat(path); err == nil {
			if !overwrite {
				return nil, fmt.Errorf("%w: %s", ErrDatabaseExists, path)
			}
			if err := removeDatabase(path); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	s, err := openSQLite(ctx, path, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "database created", logger.String("path", path), logger.Bool("overwrite", overwrite))
	return s, nil
}

// Open opens an existing database at path. MemoryPath is accepted and always
// starts empty.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	path, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if path != MemoryPath {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", path, err)
		case info.IsDir():
			return nil, fmt.Errorf("%w: %s is a directory", ErrDatabaseNotFound, path)
		}
	}
	s, err := openSQLite(ctx, path, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "database opened", logger.String("path", path))
	return s, nil
}

func cleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("database path is required")
	}
	if path == MemoryPath {
		return path, nil
	}
	return filepath.Clean(path), nil
}

func removeDatabase(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

func openSQLite(ctx context.Context, path string, o options) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer; an in-memory database also lives on a single connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path, logger: o.logger}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

// Insert validates o and appends it.
func (s *SQLiteStore) Insert(ctx context.Context, o model.Observation) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	if err := o.Validate(); err != nil {
		metrics.RecordObservationRejected()
		return 0, err
	}
	defer observeLatency("insert", time.Now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (
		   match_number, team_number, autonomous, high, middle, low,
		   minibot_place, penalties, card, comment
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.MatchNumber, o.TeamNumber, int(o.Autonomous), o.High, o.Middle, o.Low,
		o.MinibotPlace, o.Penalties, int(o.Card), o.Comment,
	)
	if err != nil {
		if isCheckViolation(err) {
			metrics.RecordObservationRejected()
			return 0, fmt.Errorf("%w: %w", ErrInvalidObservation, err)
		}
		metrics.RecordErrorByComponent("repository", "insert")
		return 0, fmt.Errorf("insert observation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert observation: last id: %w", err)
	}
	metrics.RecordObservationRecorded()
	s.logger.Debug(ctx, "observation recorded",
		logger.Int64("id", id),
		logger.Int("team", o.TeamNumber),
		logger.Int("match", o.MatchNumber))
	return id, nil
}

// DistinctTeams lists teams in first-recorded order.
func (s *SQLiteStore) DistinctTeams(ctx context.Context) ([]int, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	defer observeLatency("distinct_teams", time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT team_number FROM observations GROUP BY team_number ORDER BY MIN(id)`)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "query")
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]int, 0)
	for rows.Next() {
		var team int
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// ObservationsForTeam lists a team's observations in insertion order.
func (s *SQLiteStore) ObservationsForTeam(ctx context.Context, team int) ([]model.Observation, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	defer observeLatency("observations_for_team", time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+observationColumns+` FROM observations WHERE team_number = ? ORDER BY id`, team)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "query")
		return nil, fmt.Errorf("query observations for team %d: %w", team, err)
	}
	return scanObservations(rows)
}

// All lists every observation in insertion order.
func (s *SQLiteStore) All(ctx context.Context) ([]model.Observation, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	defer observeLatency("all", time.Now())

	rows, err := s.db.QueryContext(ctx, `SELECT `+observationColumns+` FROM observations ORDER BY id`)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "query")
		return nil, fmt.Errorf("query observations: %w", err)
	}
	return scanObservations(rows)
}

// Count returns the number of stored observations.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	defer observeLatency("count", time.Now())

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observations`).Scan(&n); err != nil {
		metrics.RecordErrorByComponent("repository", "query")
		return 0, fmt.Errorf("count observations: %w", err)
	}
	metrics.UpdateObservationCount(n)
	return n, nil
}

func (s *SQLiteStore) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil || s.closed.Load() {
		return ErrClosed
	}
	return nil
}

func scanObservations(rows *sql.Rows) ([]model.Observation, error) {
	defer rows.Close()

	out := make([]model.Observation, 0)
	for rows.Next() {
		var (
			o          model.Observation
			auto, card int
		)
		if err := rows.Scan(
			&o.ID, &o.MatchNumber, &o.TeamNumber, &auto, &o.High, &o.Middle, &o.Low,
			&o.MinibotPlace, &o.Penalties, &card, &o.Comment,
		); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.Autonomous = model.AutonomousTier(auto)
		o.Card = model.CardLevel(card)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return out, nil
}

func isCheckViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}

func observeLatency(operation string, start time.Time) {
	metrics.RecordStoreQueryLatency(operation, float64(time.Since(start).Microseconds())/1000.0)
}
