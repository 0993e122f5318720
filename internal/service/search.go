package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// CategoryRegistry resolves a category slug to its attribute schema.
// A slug with no matching category resolves to nil, nil: not-found is
// not an error, it just means no category-specific facets or filters.
type CategoryRegistry interface {
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
}

// PlanExecutor runs a combined execution plan (result page, total count
// and every facet aggregation) in one logical call against a single
// consistent snapshot.
type PlanExecutor interface {
	Execute(ctx context.Context, plan model.ExecutionPlan) (*model.ExecutionResult, error)
}

// SearchLogStore persists search logs
type SearchLogStore interface {
	LogSearch(ctx context.Context, entry *model.SearchLogEntry) error
}

// SearchService handles search business logic
type SearchService struct {
	categories CategoryRegistry
	executor   PlanExecutor
	logs       SearchLogStore
	logger     *zap.Logger
}

// NewSearchService creates a new search service. logs may be nil to
// disable search logging.
func NewSearchService(categories CategoryRegistry, executor PlanExecutor, logs SearchLogStore, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		categories: categories,
		executor:   executor,
		logs:       logs,
		logger:     logger,
	}
}

// Search runs one complete faceted search: schema resolution, filter
// compilation, query and facet planning, combined execution and
// response assembly. Malformed request fragments degrade silently;
// only registry or execution failures are returned as errors.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()
	normalizeRequest(req)

	// Schema resolution must precede planning: facet specs and
	// attribute-key semantics depend on the resolved schema.
	var schema model.AttributeSchema
	var categoryID *int64
	if req.CategorySlug != "" {
		category, err := s.categories.FindBySlug(ctx, req.CategorySlug)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", req.CategorySlug, err)
		}
		if category != nil {
			schema = category.AttributeSchema
			categoryID = &category.ID
		}
	}

	predicates := CompileFilters(req.Filters)
	plan := PlanQuery(predicates, req.Query, categoryID, req.Sort, req.Page, req.Limit)
	plan.Facets = PlanFacets(schema)

	raw, err := s.executor.Execute(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search plan: %w", err)
	}

	response := AssembleResponse(raw, plan.Facets, req)

	took := time.Since(startTime)
	s.logger.Debug("search completed",
		zap.String("query", req.Query),
		zap.String("category", req.CategorySlug),
		zap.Int("total", response.Pagination.Total),
		zap.Duration("took", took),
	)

	// Log search (non-blocking)
	if s.logs != nil {
		entry := &model.SearchLogEntry{
			SearchID:       uuid.NewString(),
			Query:          req.Query,
			CategorySlug:   req.CategorySlug,
			Filters:        req.Filters,
			ResultCount:    response.Pagination.Total,
			ResponseTimeMs: int(took.Milliseconds()),
		}
		go func() {
			if err := s.logs.LogSearch(context.Background(), entry); err != nil {
				s.logger.Warn("failed to log search", zap.Error(err))
			}
		}()
	}

	return response, nil
}

// normalizeRequest applies the request invariants: trimmed text inputs,
// page floor of 1, page size clamped into [1, MaxPageSize], unknown
// sort tokens mapped to relevance
func normalizeRequest(req *model.SearchRequest) {
	req.Query = strings.TrimSpace(req.Query)
	req.CategorySlug = strings.TrimSpace(req.CategorySlug)
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = model.DefaultPageSize
	}
	if req.Limit > model.MaxPageSize {
		req.Limit = model.MaxPageSize
	}
	req.Sort = NormalizeSort(req.Sort)
}
