// Package store keeps a history of wiring runs in SQLite.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id              TEXT PRIMARY KEY,
    scenario        TEXT NOT NULL,
    strategy        TEXT NOT NULL,
    max_string_size INTEGER NOT NULL,
    modules         INTEGER NOT NULL,
    strings         INTEGER NOT NULL,
    total_distance  REAL NOT NULL,
    longest         REAL NOT NULL,
    created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at);
`

// timeLayout is fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded wiring computation.
type Run struct {
	ID            string    `json:"id"`
	Scenario      string    `json:"scenario"`
	Strategy      string    `json:"strategy"`
	MaxStringSize int       `json:"max_string_size"`
	Modules       int       `json:"modules"`
	Strings       int       `json:"strings"`
	TotalDistance float64   `json:"total_distance"`
	Longest       float64   `json:"longest"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRun summarizes a wiring result under a fresh run ID.
func NewRun(scenario string, res *wiring.Result) *Run {
	r := &Run{
		ID:            uuid.NewString(),
		Scenario:      scenario,
		Strategy:      res.Strategy,
		MaxStringSize: res.MaxStringSize,
		Modules:       res.Segment.Len(),
		Strings:       len(res.Strings),
		TotalDistance: res.Total,
		CreatedAt:     time.Now().UTC(),
	}
	if s, ok := res.Longest(); ok {
		r.Longest = s.Distance
	}
	return r
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating database directory")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "opening %s", path)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "applying schema")
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records run. A run without an ID is given one.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO runs (id, scenario, strategy, max_string_size, modules, strings, total_distance, longest, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		run.ID, run.Scenario, run.Strategy, run.MaxStringSize, run.Modules,
		run.Strings, run.TotalDistance, run.Longest, run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "saving run %s", run.ID)
	}
	return nil
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, scenario, strategy, max_string_size, modules, strings, total_distance, longest, created_at
        FROM runs
        WHERE id = ?
    `, id)

	run, err := scanRun(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading run %s", id)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns
// every run.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, scenario, strategy, max_string_size, modules, strings, total_distance, longest, created_at
        FROM runs
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing runs")
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing runs")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing runs")
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r       Run
		created string
	)
	if err := sc.Scan(&r.ID, &r.Scenario, &r.Strategy, &r.MaxStringSize, &r.Modules,
		&r.Strings, &r.TotalDistance, &r.Longest, &created); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("created_at %q: %w", created, err)
	}
	r.CreatedAt = t
	return &r, nil
}
