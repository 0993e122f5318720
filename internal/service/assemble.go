package service

import (
	"fmt"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// Human labels for the predefined price buckets
var priceRangeLabels = map[string]string{
	"0":      "Under ₹1,000",
	"1000":   "₹1,000 - ₹5,000",
	"5000":   "₹5,000 - ₹10,000",
	"10000":  "₹10,000 - ₹25,000",
	"25000":  "₹25,000 - ₹50,000",
	"50000":  "₹50,000 - ₹1,00,000",
	"100000": "Above ₹1,00,000",
}

// AssembleResponse shapes raw execution output into the response
// contract: pagination metadata, labeled facet options and the echoed
// query. A facet whose computation produced zero groups is omitted from
// the response; the rule is uniform across every facet kind.
func AssembleResponse(raw *model.ExecutionResult, specs []model.FacetSpec, req *model.SearchRequest) *model.SearchResponse {
	results := raw.Results
	if results == nil {
		results = []model.ResultItem{}
	}

	total := raw.Total
	if total < 0 {
		total = 0
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}

	facets := make(map[string]model.FacetResult, len(specs))
	for _, spec := range specs {
		options := assembleFacetOptions(spec, raw.FacetCounts[spec.Key])
		if len(options) == 0 {
			continue
		}
		facets[spec.Key] = model.FacetResult{
			Label:   spec.Label,
			Type:    spec.ValueType,
			Options: options,
		}
	}

	echoed := model.EchoedQuery{
		Q:        req.Query,
		Category: req.CategorySlug,
	}
	if len(req.Filters) > 0 {
		echoed.Filters = req.Filters
	}

	return &model.SearchResponse{
		Results: results,
		Facets:  facets,
		Pagination: model.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
		Query: echoed,
	}
}

func assembleFacetOptions(spec model.FacetSpec, counts []model.FacetCount) []model.FacetOption {
	options := make([]model.FacetOption, 0, len(counts))
	for _, group := range counts {
		if group.Value == "" || group.Count <= 0 {
			continue
		}
		options = append(options, model.FacetOption{
			Value: group.Value,
			Label: facetOptionLabel(spec, group.Value),
			Count: group.Count,
		})
	}
	return options
}

func facetOptionLabel(spec model.FacetSpec, value string) string {
	if spec.Source != model.FacetSourcePriceBucket {
		return value
	}
	if label, ok := priceRangeLabels[value]; ok {
		return label
	}
	return fmt.Sprintf("₹%s+", value)
}
