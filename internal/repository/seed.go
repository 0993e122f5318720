package repository

import (
	"context"
	"fmt"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// schemaDDL creates the tables the search engine reads from. The
// search_vector column keeps the title+description text index the
// text-match stage relies on.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS categories (
	id               BIGSERIAL PRIMARY KEY,
	name             TEXT NOT NULL,
	slug             TEXT NOT NULL UNIQUE,
	attribute_schema JSONB NOT NULL DEFAULT '{}',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS listings (
	id            BIGSERIAL PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	price         NUMERIC NOT NULL CHECK (price >= 0),
	location      TEXT NOT NULL,
	category_id   BIGINT NOT NULL REFERENCES categories(id),
	attributes    JSONB NOT NULL DEFAULT '{}',
	images        JSONB,
	tags          JSONB,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	search_vector TSVECTOR GENERATED ALWAYS AS (
		to_tsvector('english', coalesce(title, '') || ' ' || coalesce(description, ''))
	) STORED,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_listings_search_vector ON listings USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_listings_attributes ON listings USING GIN (attributes);
CREATE INDEX IF NOT EXISTS idx_listings_category_active ON listings (category_id, is_active);
CREATE INDEX IF NOT EXISTS idx_listings_price ON listings (price);
CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at DESC);

CREATE TABLE IF NOT EXISTS search_logs (
	id               BIGSERIAL PRIMARY KEY,
	search_id        UUID NOT NULL,
	query            TEXT NOT NULL DEFAULT '',
	category_slug    TEXT NOT NULL DEFAULT '',
	filters          JSONB,
	result_count     INT NOT NULL DEFAULT 0,
	response_time_ms INT NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the database schema if it does not exist yet
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// UpsertCategory inserts a category or refreshes its attribute schema,
// returning the category id
func (r *PostgresRepository) UpsertCategory(ctx context.Context, category *model.Category) (int64, error) {
	query := `
		INSERT INTO categories (name, slug, attribute_schema)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
			attribute_schema = EXCLUDED.attribute_schema,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	err := r.db.GetContext(ctx, &id, query, category.Name, category.Slug, category.AttributeSchema)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert category %q: %w", category.Slug, err)
	}
	return id, nil
}

// InsertListing inserts a listing, returning its id
func (r *PostgresRepository) InsertListing(ctx context.Context, listing *model.Listing) (int64, error) {
	query := `
		INSERT INTO listings (title, description, price, location, category_id, attributes, images, tags, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.GetContext(ctx, &id, query,
		listing.Title, listing.Description, listing.Price, listing.Location,
		listing.CategoryID, listing.Attributes, listing.Images, listing.Tags,
		listing.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert listing %q: %w", listing.Title, err)
	}
	return id, nil
}

// TruncateListings removes all listings, used before reseeding
func (r *PostgresRepository) TruncateListings(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE listings RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate listings: %w", err)
	}
	return nil
}
