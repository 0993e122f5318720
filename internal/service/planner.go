package service

import (
	"sort"
	"strings"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// NormalizeSort maps an unknown sort token to relevance
func NormalizeSort(s string) string {
	switch s {
	case model.SortRelevance, model.SortNewest, model.SortOldest, model.SortPriceAsc, model.SortPriceDesc:
		return s
	}
	return model.SortRelevance
}

// PlanQuery assembles the compiled predicates, text-search stage,
// category constraint, sort and pagination window into one execution
// plan. The match stage it produces is shared with every facet
// computation, so the result page and all facets count the same
// filtered population.
func PlanQuery(preds model.PredicateSet, text string, categoryID *int64, sortMode string, page, limit int) model.ExecutionPlan {
	text = strings.TrimSpace(text)

	match := model.PredicateSet{
		{Field: model.FieldActive, Op: model.OpEq, Value: true},
	}
	match = append(match, preds...)
	if text != "" {
		match = append(match, model.Predicate{
			Field: model.FieldText,
			Op:    model.OpTextMatch,
			Value: text,
		})
	}
	if categoryID != nil {
		match = append(match, model.Predicate{
			Field: model.FieldCategory,
			Op:    model.OpEq,
			Value: *categoryID,
		})
	}

	sortMode = NormalizeSort(sortMode)
	// Relevance needs a text rank to sort by; without a text query it
	// degrades to newest-first.
	if sortMode == model.SortRelevance && text == "" {
		sortMode = model.SortNewest
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = model.DefaultPageSize
	}
	if limit > model.MaxPageSize {
		limit = model.MaxPageSize
	}

	return model.ExecutionPlan{
		Match:        match,
		Sort:         sortMode,
		IncludeScore: text != "",
		Offset:       (page - 1) * limit,
		Limit:        limit,
	}
}

// Engine-owned facet labels, independent of any category schema
const (
	brandFacetKey      = "brand"
	brandFacetLabel    = "Brand"
	priceFacetKey      = "priceRange"
	priceFacetLabel    = "Price Range"
	locationFacetKey   = "location"
	locationFacetLabel = "Location"

	// Location and brand facets surface at most this many groups
	groupedFacetLimit = 20
)

// PlanFacets derives the facet computations for a request: one per
// filterable attribute of the resolved schema, the fixed price-bucket
// and location dimensions, and the cross-category brand dimension.
// Brand is planned unconditionally; a schema-declared brand attribute
// is superseded by the fixed brand spec so the response carries a
// single engine-labeled brand facet.
func PlanFacets(schema model.AttributeSchema) []model.FacetSpec {
	specs := make([]model.FacetSpec, 0, len(schema)+3)

	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cfg := schema[key]
		if !cfg.Filterable || key == brandFacetKey {
			continue
		}
		specs = append(specs, model.FacetSpec{
			Key:          key,
			Label:        cfg.Label,
			ValueType:    cfg.Type,
			Source:       model.FacetSourceAttribute,
			AttributeKey: key,
		})
	}

	specs = append(specs,
		model.FacetSpec{
			Key:       priceFacetKey,
			Label:     priceFacetLabel,
			ValueType: model.AttrTypeString,
			Source:    model.FacetSourcePriceBucket,
		},
		model.FacetSpec{
			Key:       locationFacetKey,
			Label:     locationFacetLabel,
			ValueType: model.AttrTypeString,
			Source:    model.FacetSourceLocation,
			Limit:     groupedFacetLimit,
		},
		model.FacetSpec{
			Key:          brandFacetKey,
			Label:        brandFacetLabel,
			ValueType:    model.AttrTypeString,
			Source:       model.FacetSourceBrand,
			AttributeKey: brandFacetKey,
			Limit:        groupedFacetLimit,
		},
	)

	return specs
}
