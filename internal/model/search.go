package model

// Sort modes accepted by the search endpoint
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Search pagination limits
const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// SearchRequest represents a normalized search query request.
// Filters is the decoded client filter object; malformed filter JSON
// normalizes to an empty map, never an error.
type SearchRequest struct {
	Query        string                 `json:"q"`
	CategorySlug string                 `json:"category"`
	Filters      map[string]interface{} `json:"filters"`
	Page         int                    `json:"page"`
	Limit        int                    `json:"limit"`
	Sort         string                 `json:"sort"`
}

// FacetOption is a single facet value with its count over the filtered
// result population
type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FacetResult is a labeled facet with its computed options.
// Options reflect counts under the same predicate set as the result
// page, excluding pagination.
type FacetResult struct {
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Options []FacetOption `json:"options"`
}

// Pagination holds the pagination metadata of a search response
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// EchoedQuery echoes the non-empty inputs of the request back to the
// client; empty values are omitted
type EchoedQuery struct {
	Q        string                 `json:"q,omitempty"`
	Category string                 `json:"category,omitempty"`
	Filters  map[string]interface{} `json:"filters,omitempty"`
}

// SearchResponse is the full search result contract: the paginated
// result page, facets computed over the same filtered population, and
// pagination metadata
type SearchResponse struct {
	Results    []ResultItem           `json:"results"`
	Facets     map[string]FacetResult `json:"facets"`
	Pagination Pagination             `json:"pagination"`
	Query      EchoedQuery            `json:"query"`
}
