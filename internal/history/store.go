// Package history persists a record of finished conversions. It is
// optional: the server runs without a database and simply skips recording
// when no store is configured.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Conversion is one recorded conversion.
type Conversion struct {
	ID          uuid.UUID     `json:"id"`
	Filename    string        `json:"filename"`
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	OutputBytes int64         `json:"outputBytes"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"durationMs"`
	Outcome     string        `json:"outcome"` // "ok" or "failed"
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Store records and lists conversions.
type Store struct {
	db DBTX
}

// New creates a Store on top of a connection pool or transaction.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the conversions table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS conversions (
			id           UUID PRIMARY KEY,
			filename     TEXT NOT NULL,
			rows         INTEGER NOT NULL,
			columns      INTEGER NOT NULL,
			output_bytes BIGINT NOT NULL,
			duration_ms  BIGINT NOT NULL,
			outcome      TEXT NOT NULL,
			error        TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensuring conversions schema: %w", err)
	}
	return nil
}

// Record inserts one conversion.
func (s *Store) Record(ctx context.Context, c Conversion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO conversions (id, filename, rows, columns, output_bytes, duration_ms, outcome, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Filename, c.Rows, c.Columns, c.OutputBytes,
		c.Duration.Milliseconds(), c.Outcome, c.Error, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Recent returns the latest conversions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, filename, rows, columns, output_bytes, duration_ms, outcome, error, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.Filename, &c.Rows, &c.Columns,
			&c.OutputBytes, &c.DurationMS, &c.Outcome, &c.Error, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
