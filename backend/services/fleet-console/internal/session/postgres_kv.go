package session

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresKV stores records in the kv_store table, one row per (namespace, key).
type PostgresKV struct {
	db        *sql.DB
	namespace string
}

// NewPostgresKV returns a KV over db scoped to namespace (the backend origin).
func NewPostgresKV(db *sql.DB, namespace string) *PostgresKV {
	return &PostgresKV{db: db, namespace: namespace}
}

// EnsureSchema creates the kv_store table when missing.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS kv_store (
			namespace  TEXT        NOT NULL,
			key        TEXT        NOT NULL,
			value      TEXT        NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, key)
		)
	`
	_, err := p.db.ExecContext(ctx, query)
	return err
}

// Get implements KV.
func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `
		SELECT value
		FROM kv_store
		WHERE namespace = $1 AND key = $2
	`
	var value string
	if err := p.db.QueryRowContext(ctx, query, p.namespace, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

// Set implements KV as an upsert.
func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO kv_store (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := p.db.ExecContext(ctx, query, p.namespace, key, string(value))
	return err
}

// Delete implements KV.
func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_store WHERE namespace = $1 AND key = $2`
	_, err := p.db.ExecContext(ctx, query, p.namespace, key)
	return err
}
