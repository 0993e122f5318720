package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
	"github.com/musavirchukkan/b2b-marketplace-search/internal/service"
)

// searchErrorMessage is the only error body the search endpoint ever
// returns; internal causes are logged, never leaked
const searchErrorMessage = "Internal server error during search operation"

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
	defaultLimit  int
	maxLimit      int
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, defaultLimit, maxLimit int, logger *zap.Logger) *SearchHandler {
	if defaultLimit < 1 {
		defaultLimit = model.DefaultPageSize
	}
	if maxLimit < 1 || maxLimit > model.MaxPageSize {
		maxLimit = model.MaxPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{
		searchService: searchService,
		defaultLimit:  defaultLimit,
		maxLimit:      maxLimit,
		logger:        logger,
	}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	req := h.parseSearchRequest(c)

	response, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("search failed",
			zap.String("query", req.Query),
			zap.String("category", req.CategorySlug),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": searchErrorMessage})
		return
	}

	c.JSON(http.StatusOK, response)
}

// parseSearchRequest normalizes the query-string parameters: malformed
// filters JSON becomes an empty filter map, page floors at 1, limit
// clamps into [1, maxLimit], everything else defaults
func (h *SearchHandler) parseSearchRequest(c *gin.Context) *model.SearchRequest {
	req := &model.SearchRequest{
		Query:        strings.TrimSpace(c.Query("q")),
		CategorySlug: strings.TrimSpace(c.Query("category")),
		Filters:      map[string]interface{}{},
		Page:         1,
		Limit:        h.defaultLimit,
		Sort:         service.NormalizeSort(c.Query("sort")),
	}

	if raw := c.Query("filters"); raw != "" {
		var filters map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			h.logger.Warn("invalid filters JSON, ignoring", zap.String("filters", raw))
		} else {
			req.Filters = filters
		}
	}

	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			req.Page = page
		}
	}

	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			if limit < 1 {
				limit = 1
			}
			if limit > h.maxLimit {
				limit = h.maxLimit
			}
			req.Limit = limit
		}
	}

	return req
}
