package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// PostgresRepository handles database operations: it is the category
// registry and the execution adapter of the search engine
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// FindBySlug resolves a category and its attribute schema by slug.
// Returns nil, nil when no category matches: not-found is not an error.
func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	query := `
		SELECT id, name, slug, attribute_schema, created_at, updated_at
		FROM categories
		WHERE slug = $1
	`
	err := r.db.GetContext(ctx, &category, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// ListCategories returns all categories sorted by name
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	query := `
		SELECT id, name, slug, attribute_schema, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetListingByID retrieves a single active listing by its ID
func (r *PostgresRepository) GetListingByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	query := `
		SELECT id, title, description, price, location, category_id,
			attributes, images, tags, is_active, created_at, updated_at
		FROM listings
		WHERE id = $1 AND is_active = true
	`
	err := r.db.GetContext(ctx, &listing, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// resultRow is the projection of one result-page row
type resultRow struct {
	ID           int64             `db:"id"`
	Title        string            `db:"title"`
	Description  string            `db:"description"`
	Price        float64           `db:"price"`
	Location     string            `db:"location"`
	Attributes   model.JSONMap     `db:"attributes"`
	Images       model.StringArray `db:"images"`
	Tags         model.StringArray `db:"tags"`
	CategoryName string            `db:"category_name"`
	CategorySlug string            `db:"category_slug"`
	CreatedAt    time.Time         `db:"created_at"`
	Score        sql.NullFloat64   `db:"score"`
}

func (row resultRow) toResultItem(includeScore bool) model.ResultItem {
	item := model.ResultItem{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		Location:    row.Location,
		Attributes:  row.Attributes,
		Images:      row.Images,
		Tags:        row.Tags,
		Category: model.CategoryRef{
			Name: row.CategoryName,
			Slug: row.CategorySlug,
		},
		CreatedAt: row.CreatedAt,
	}
	if item.Images == nil {
		item.Images = model.StringArray{}
	}
	if item.Tags == nil {
		item.Tags = model.StringArray{}
	}
	if includeScore && row.Score.Valid {
		score := row.Score.Float64
		item.Score = &score
	}
	return item
}

// facetRow is one aggregation group of a facet query
type facetRow struct {
	Value string `db:"value"`
	Count int    `db:"count"`
}

// Execute runs a combined execution plan: the total count, the sorted
// and paginated result page, and every facet aggregation. All stages
// run inside one read-only repeatable-read transaction so results and
// facets are computed against a single consistent snapshot.
func (r *PostgresRepository) Execute(ctx context.Context, plan model.ExecutionPlan) (*model.ExecutionResult, error) {
	where, args := renderMatch(plan.Match)

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin search transaction: %w", err)
	}
	defer tx.Rollback()

	var total int
	countQuery := "SELECT COUNT(*) " + listingJoin + " WHERE " + where
	if err := tx.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	selectQuery, selectArgs := renderSelect(plan, where, args)
	var rows []resultRow
	if err := tx.SelectContext(ctx, &rows, selectQuery, selectArgs...); err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}

	facetCounts := make(map[string][]model.FacetCount, len(plan.Facets))
	for _, spec := range plan.Facets {
		facetQuery, facetArgs := renderFacet(spec, where, args)
		var groups []facetRow
		if err := tx.SelectContext(ctx, &groups, facetQuery, facetArgs...); err != nil {
			return nil, fmt.Errorf("failed to compute facet %q: %w", spec.Key, err)
		}
		counts := make([]model.FacetCount, 0, len(groups))
		for _, group := range groups {
			counts = append(counts, model.FacetCount{Value: group.Value, Count: group.Count})
		}
		facetCounts[spec.Key] = counts
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit search transaction: %w", err)
	}

	results := make([]model.ResultItem, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toResultItem(plan.IncludeScore))
	}

	return &model.ExecutionResult{
		Results:     results,
		Total:       total,
		FacetCounts: facetCounts,
	}, nil
}

// LogSearch logs a search query
func (r *PostgresRepository) LogSearch(ctx context.Context, entry *model.SearchLogEntry) error {
	query := `
		INSERT INTO search_logs (search_id, query, category_slug, filters, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.SearchID, entry.Query, entry.CategorySlug, entry.Filters,
		entry.ResultCount, entry.ResponseTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}
