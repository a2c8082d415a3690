// Package db provides optional PostgreSQL persistence for processed runs.
// The server operates fully without it; history endpoints simply disappear
// when no DATABASE_URL is configured.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the runs table when it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS keyword_runs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company TEXT NOT NULL,
			job_url TEXT NOT NULL DEFAULT '',
			scraped_from_url BOOLEAN NOT NULL DEFAULT FALSE,
			keywords TEXT[] NOT NULL DEFAULT '{}',
			missing_keywords TEXT[] NOT NULL DEFAULT '{}',
			warnings TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Run is one recorded processing run.
type Run struct {
	ID              uuid.UUID `json:"id"`
	Company         string    `json:"company"`
	JobURL          string    `json:"job_url,omitempty"`
	ScrapedFromURL  bool      `json:"scraped_from_url"`
	Keywords        []string  `json:"keywords"`
	MissingKeywords []string  `json:"missing_keywords"`
	Warnings        []string  `json:"warnings"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveRun inserts a run record and returns its generated ID.
func (db *DB) SaveRun(ctx context.Context, run *Run) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO keyword_runs (company, job_url, scraped_from_url, keywords, missing_keywords, warnings)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		run.Company, run.JobURL, run.ScrapedFromURL, run.Keywords, run.MissingKeywords, run.Warnings,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// GetRun retrieves a run by ID. Returns nil when the run does not exist.
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, company, job_url, scraped_from_url, keywords, missing_keywords, warnings, created_at
		 FROM keyword_runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.Company, &run.JobURL, &run.ScrapedFromURL,
		&run.Keywords, &run.MissingKeywords, &run.Warnings, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns runs newest first, plus the total count for pagination.
func (db *DB) ListRuns(ctx context.Context, limit, offset int) ([]Run, int, error) {
	if limit <= 0 {
		limit = 50
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM keyword_runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, company, job_url, scraped_from_url, keywords, missing_keywords, warnings, created_at
		 FROM keyword_runs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Company, &run.JobURL, &run.ScrapedFromURL,
			&run.Keywords, &run.MissingKeywords, &run.Warnings, &run.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, total, nil
}
