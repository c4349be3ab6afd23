package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the idempotent table definitions. Content tables share the
// score/is_shown pair; is_shown defaults to true and is only ever derived
// from score by the visibility policy.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS facts (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		content TEXT NOT NULL,
		source TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'default',
		score INTEGER NOT NULL DEFAULT 0,
		is_shown BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS jokes (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		content TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		is_shown BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'default',
		score INTEGER NOT NULL DEFAULT 0,
		is_shown BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id BIGSERIAL PRIMARY KEY,
		content_kind TEXT NOT NULL,
		content_id BIGINT NOT NULL,
		substance TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_facts_date ON facts (date)`,
	`CREATE INDEX IF NOT EXISTS idx_jokes_date ON jokes (date)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_date ON recipes (date)`,
}

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
