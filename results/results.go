// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package results keeps a SQLite catalog of finished machine runs.
//
// Only outcomes are stored: the machine text, how it stopped, and the
// size of the tape it left behind. Machine state is never persisted.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Fixed width so that started_at sorts as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded outcome.
type Run struct {
	ID        string
	Machine   string // Machine text (bb code or file name).
	Format    string // Source format: bb, yaml or star.
	Status    string // Halted, Error, Running (step limit) or Interrupted.
	Steps     int64
	TapeLen   int
	NonBlank  int
	StartedAt time.Time
	Duration  time.Duration
}

// Store is a run catalog backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the catalog at path and migrates it.
// Use ":memory:" for a private in-memory catalog.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}

	if path == ":memory:" {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path of the catalog.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores a run. An empty ID is filled with a new UUID, and a zero
// StartedAt with the current time.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if s.db == nil {
		return ErrClosed
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, machine, format, status, steps, tape_len, non_blank, started_at, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Machine, run.Format, run.Status, run.Steps,
		run.TapeLen, run.NonBlank, run.StartedAt.Format(timeFormat),
		int64(run.Duration),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return nil
}

const selectRuns = `SELECT id, machine, format, status, steps, tape_len, non_blank, started_at, duration_ns FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (run Run, err error) {
	var startedAt string
	var duration int64

	err = row.Scan(&run.ID, &run.Machine, &run.Format, &run.Status,
		&run.Steps, &run.TapeLen, &run.NonBlank, &startedAt, &duration)
	if err != nil {
		return
	}

	run.StartedAt, err = time.Parse(timeFormat, startedAt)
	if err != nil {
		err = fmt.Errorf("parse started_at: %w", err)
		return
	}
	run.Duration = time.Duration(duration)

	return
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	return &run, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) List(ctx context.Context, limit int) (runs []Run, err error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var run Run
		run, err = scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}
