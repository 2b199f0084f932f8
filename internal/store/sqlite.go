// Package store keeps a history of viewed schedules in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/coursegrid/internal/schedule"
)

// ErrNotFound is returned when no history entry has the requested id.
var ErrNotFound = errors.New("schedule not found")

// Entry is one saved schedule snapshot.
type Entry struct {
	ID        int64
	Label     string
	Source    string
	Score     *float64
	CreatedAt time.Time
	Schedule  *schedule.Schedule
}

// Title returns the label, or the schedule title when no label was given.
func (e Entry) Title() string {
	if e.Label != "" {
		return e.Label
	}
	if e.Schedule != nil {
		return e.Schedule.Title()
	}
	return fmt.Sprintf("entry %d", e.ID)
}

// SQLite is the schedule history backed by a SQLite file.
type SQLite struct {
	db    *sql.DB
	log   zerolog.Logger
	limit int
}

// Option configures the store.
type Option func(*SQLite)

// WithLogger sets the logger used for history maintenance messages.
func WithLogger(l zerolog.Logger) Option {
	return func(s *SQLite) {
		s.log = l.With().Str("component", "store").Logger()
	}
}

// WithLimit prunes the history to the newest n entries after each Save.
// Zero keeps everything.
func WithLimit(n int) Option {
	return func(s *SQLite) {
		s.limit = n
	}
}

// New opens (or creates) the history database and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Save stores a snapshot and returns its id.
func (s *SQLite) Save(ctx context.Context, label, source string, sched *schedule.Schedule) (int64, error) {
	if sched == nil {
		return 0, schedule.ErrNoClasses
	}

	payload, err := json.Marshal(sched)
	if err != nil {
		return 0, fmt.Errorf("encoding schedule: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO schedules (label, source, payload, score, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		label,
		source,
		string(payload),
		sched.Score,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	if s.limit > 0 {
		if _, err := pruneTx(ctx, tx, s.limit); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Debug().Int64("id", id).Str("source", source).Int("classes", len(sched.Classes)).Msg("saved schedule")
	return id, nil
}

// Get retrieves a snapshot by id.
func (s *SQLite) Get(ctx context.Context, id int64) (*Entry, error) {
	query := `
		SELECT id, label, source, payload, score, created_at
		FROM schedules
		WHERE id = ?
	`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns up to limit snapshots, newest first. A limit of zero or
// less returns everything.
func (s *SQLite) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := `
		SELECT id, label, source, payload, score, created_at
		FROM schedules
		ORDER BY id DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}

	return entries, nil
}

// Delete removes a snapshot.
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return nil
}

// Clear removes every snapshot and returns how many were deleted.
func (s *SQLite) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM schedules`)
	if err != nil {
		return 0, fmt.Errorf("clearing schedules: %w", err)
	}
	n, _ := result.RowsAffected()
	s.log.Debug().Int64("removed", n).Msg("cleared history")
	return n, nil
}

// Prune keeps the newest keep snapshots and returns how many were removed.
func (s *SQLite) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("invalid keep count %d", keep)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n, err := pruneTx(ctx, tx, keep)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	if n > 0 {
		s.log.Debug().Int64("removed", n).Int("keep", keep).Msg("pruned history")
	}
	return n, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func pruneTx(ctx context.Context, tx *sql.Tx, keep int) (int64, error) {
	query := `
		DELETE FROM schedules
		WHERE id NOT IN (SELECT id FROM schedules ORDER BY id DESC LIMIT ?)
	`
	result, err := tx.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning schedules: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e         Entry
		payload   string
		score     sql.NullFloat64
		createdAt string
	)

	if err := row.Scan(&e.ID, &e.Label, &e.Source, &payload, &score, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}

	if score.Valid {
		v := score.Float64
		e.Score = &v
	}

	var err error
	e.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	var sched schedule.Schedule
	if err := json.Unmarshal([]byte(payload), &sched); err != nil {
		return nil, fmt.Errorf("decoding schedule %d: %w", e.ID, err)
	}
	e.Schedule = &sched

	return &e, nil
}

// parseTimestamp accepts the formats SQLite may hand back for DATETIME columns.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
