// Package store persists canonical job records in PostgreSQL.
//
// Write operations that belong to a batch (upserts during an ingestion run)
// take a caller-supplied pgx.Tx: the store never opens its own connection
// for them, so a source run commits or rolls back as one unit and the
// caller controls isolation.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps the connection pool with job-table operations.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// WithTx runs fn inside a transaction, committing on nil error and rolling
// back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// InitSchema creates the jobs table when absent. The schema is owned by the
// service itself; there is no separate migration pipeline.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			job_id                TEXT PRIMARY KEY,
			source                TEXT,
			source_job_id         TEXT,
			source_url            TEXT,
			title                 TEXT,
			company_name          TEXT,
			description           TEXT,
			remote_source_flag    BOOLEAN,
			remote_scope          TEXT,
			status                TEXT,
			first_seen_at         TIMESTAMPTZ,
			last_seen_at          TIMESTAMPTZ,
			last_verified_at      TIMESTAMPTZ,
			verification_failures INTEGER NOT NULL DEFAULT 0,
			updated_at            TIMESTAMPTZ,
			remote_class          TEXT,
			geo_class             TEXT,
			policy_v1_reason      TEXT,
			compliance_status     TEXT,
			compliance_score      INTEGER
		)
	`)
	if err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}
