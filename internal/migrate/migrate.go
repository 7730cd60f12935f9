package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

// statements are applied in order. Everything is idempotent so the command
// can be re-run against an existing database.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS manufacturers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		logo_path TEXT NOT NULL DEFAULT '',
		business_name TEXT NOT NULL DEFAULT '',
		business_address TEXT NOT NULL DEFAULT '',
		business_contact TEXT NOT NULL DEFAULT '',
		business_social_network TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		manufacturer_id BIGINT REFERENCES manufacturers (id),
		image_path TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_manufacturer ON products (manufacturer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,

	`CREATE OR REPLACE VIEW products_with_manufacturers AS
	SELECT
		p.id,
		p.name,
		p.category,
		p.description,
		p.image_path,
		m.name AS manufacturer_name,
		m.description AS manufacturer_description,
		m.logo_path AS manufacturer_logo,
		p.created_at,
		p.updated_at
	FROM products p
	LEFT JOIN manufacturers m ON p.manufacturer_id = m.id`,

	`CREATE OR REPLACE VIEW category_stats AS
	SELECT
		category,
		COUNT(*) AS product_count,
		COUNT(DISTINCT manufacturer_id) AS manufacturer_count
	FROM products
	GROUP BY category
	ORDER BY product_count DESC`,

	`CREATE OR REPLACE VIEW manufacturer_stats AS
	SELECT
		m.name AS manufacturer_name,
		m.description,
		COUNT(p.id) AS product_count,
		COUNT(DISTINCT p.category) AS category_count
	FROM manufacturers m
	LEFT JOIN products p ON m.id = p.manufacturer_id
	GROUP BY m.id, m.name, m.description
	ORDER BY product_count DESC`,
}

// businessColumns is the one-shot upgrade for installs created before the
// manufacturers table carried business details. Existing rows are preserved.
var businessColumns = []string{
	`ALTER TABLE manufacturers ADD COLUMN IF NOT EXISTS business_name TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE manufacturers ADD COLUMN IF NOT EXISTS business_address TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE manufacturers ADD COLUMN IF NOT EXISTS business_contact TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE manufacturers ADD COLUMN IF NOT EXISTS business_social_network TEXT NOT NULL DEFAULT ''`,
}

// Run creates the catalog schema: three tables, their indexes and the three
// read views.
func Run(ctx context.Context, db *sql.DB) error {
	return apply(ctx, db, statements)
}

// AddBusinessColumns applies the business-field column additions only.
func AddBusinessColumns(ctx context.Context, db *sql.DB) error {
	return apply(ctx, db, businessColumns)
}

func apply(ctx context.Context, db *sql.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply %.60q: %w", stmt, err)
		}
	}
	return nil
}
