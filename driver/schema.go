package driver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the durable tables. Deleting a category cascades to its
// articles; the slug stays unique across all categories.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		slug        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_category_created
		ON articles (category_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created
		ON articles (created_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
