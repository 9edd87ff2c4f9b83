// Package postgres is a kv.Backend on a single Postgres table, driven by a
// pgx connection pool. Each Apply runs in one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key   BYTEA PRIMARY KEY,
	value BYTEA NOT NULL
)`

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ kv.Backend = (*Store)(nil)

// Migrate creates the backing table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create kv_entries: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("key %q: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select kv entry: %w", err)
	}
	return value, nil
}

func (s *Store) Has(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM kv_entries WHERE key = $1)`, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("check kv entry: %w", err)
	}
	return exists, nil
}

func (s *Store) Apply(ctx context.Context, writes []kv.Write) error {
	if len(writes) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin kv tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, w := range writes {
		if w.Delete {
			batch.Queue(`DELETE FROM kv_entries WHERE key = $1`, w.Key)
			continue
		}
		batch.Queue(`
			INSERT INTO kv_entries (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			w.Key, w.Value)
	}

	results := tx.SendBatch(ctx, batch)
	for range writes {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("apply kv write: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close kv batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit kv tx: %w", err)
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (s *Store) Close() error {
	return nil
}
