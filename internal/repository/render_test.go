package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

func f(v float64) *float64 { return &v }

func TestRenderMatch_Predicates(t *testing.T) {
	match := model.PredicateSet{
		{Field: model.FieldActive, Op: model.OpEq, Value: true},
		{Field: "attributes.brand", Op: model.OpEq, Value: "Samsung"},
		{Field: model.FieldPrice, Op: model.OpRange, Value: model.RangeValue{GTE: f(1000), LT: f(5000)}},
		{Field: model.FieldLocation, Op: model.OpRegex, Value: "Mumbai"},
		{Field: model.FieldText, Op: model.OpTextMatch, Value: "smart tv"},
		{Field: model.FieldCategory, Op: model.OpEq, Value: int64(3)},
	}

	where, args := renderMatch(match)

	wantClauses := []string{
		"l.is_active = $1",
		"l.attributes->>$2 = $3",
		"l.price >= $4",
		"l.price < $5",
		"l.location ~* $6",
		"l.search_vector @@ plainto_tsquery('english', $7)",
		"l.category_id = $8",
	}
	for _, clause := range wantClauses {
		if !strings.Contains(where, clause) {
			t.Errorf("where clause missing %q:\n%s", clause, where)
		}
	}
	if len(args) != 8 {
		t.Fatalf("got %d args, want 8: %v", len(args), args)
	}
	if args[1] != "brand" || args[2] != "Samsung" {
		t.Errorf("attribute key and value must both be parameters, got %v", args[1:3])
	}
}

func TestRenderMatch_InPredicate(t *testing.T) {
	match := model.PredicateSet{
		{Field: "attributes.color", Op: model.OpIn, Value: []string{"Black", "White"}},
	}

	where, args := renderMatch(match)

	if !strings.Contains(where, "l.attributes->>$1 = ANY($2)") {
		t.Errorf("where = %s", where)
	}
	if args[0] != "color" {
		t.Errorf("first arg = %v, want attribute key", args[0])
	}
}

func TestRenderMatch_Empty(t *testing.T) {
	where, args := renderMatch(nil)
	if where != "1=1" {
		t.Errorf("where = %q, want 1=1", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestRenderSelect_ScoreProjection(t *testing.T) {
	plan := model.ExecutionPlan{
		Match: model.PredicateSet{
			{Field: model.FieldText, Op: model.OpTextMatch, Value: "smart tv"},
		},
		Sort:         model.SortRelevance,
		IncludeScore: true,
		Offset:       0,
		Limit:        12,
	}
	where, args := renderMatch(plan.Match)

	query, selectArgs := renderSelect(plan, where, args)

	if !strings.Contains(query, "ts_rank(l.search_vector, plainto_tsquery('english', $2)) AS score") {
		t.Errorf("query missing score projection:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY score DESC, l.created_at DESC") {
		t.Errorf("query missing relevance order:\n%s", query)
	}
	if !strings.Contains(query, "LIMIT $3 OFFSET $4") {
		t.Errorf("query missing pagination window:\n%s", query)
	}
	// text once for the match, once for the rank, then limit and offset
	want := []interface{}{"smart tv", "smart tv", 12, 0}
	if len(selectArgs) != len(want) {
		t.Fatalf("args = %v, want %v", selectArgs, want)
	}
	for i := range want {
		if selectArgs[i] != want[i] {
			t.Errorf("arg[%d] = %v, want %v", i, selectArgs[i], want[i])
		}
	}
}

func TestRenderSelect_NoScoreWithoutText(t *testing.T) {
	plan := model.ExecutionPlan{Sort: model.SortNewest, Limit: 12}
	query, _ := renderSelect(plan, "1=1", nil)

	if strings.Contains(query, "ts_rank") {
		t.Errorf("score must only be projected for text queries:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY l.created_at DESC") {
		t.Errorf("query = %s", query)
	}
}

func TestRenderSort(t *testing.T) {
	tests := []struct {
		sort         string
		includeScore bool
		want         string
	}{
		{model.SortRelevance, true, "score DESC, l.created_at DESC"},
		{model.SortRelevance, false, "l.created_at DESC"},
		{model.SortNewest, false, "l.created_at DESC"},
		{model.SortOldest, false, "l.created_at ASC"},
		{model.SortPriceAsc, false, "l.price ASC, l.created_at DESC"},
		{model.SortPriceDesc, false, "l.price DESC, l.created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_score=%v", tt.sort, tt.includeScore), func(t *testing.T) {
			plan := model.ExecutionPlan{Sort: tt.sort, IncludeScore: tt.includeScore}
			if got := renderSort(plan); got != tt.want {
				t.Errorf("renderSort = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFacet_Attribute(t *testing.T) {
	spec := model.FacetSpec{
		Key:          "screenSize",
		Source:       model.FacetSourceAttribute,
		AttributeKey: "screenSize",
	}

	query, args := renderFacet(spec, "l.is_active = $1", []interface{}{true})

	if !strings.Contains(query, "l.attributes->>$2 AS value") {
		t.Errorf("query = %s", query)
	}
	if !strings.Contains(query, "l.attributes->>$2 IS NOT NULL") {
		t.Error("null groups must be dropped in the aggregation")
	}
	if !strings.Contains(query, "ORDER BY count DESC") {
		t.Error("attribute facets sort by count descending")
	}
	if strings.Contains(query, "LIMIT") {
		t.Error("schema facets have no group cap")
	}
	if args[len(args)-1] != "screenSize" {
		t.Errorf("attribute key must be the trailing parameter, args = %v", args)
	}
}

func TestRenderFacet_BrandCapped(t *testing.T) {
	spec := model.FacetSpec{
		Key:          "brand",
		Source:       model.FacetSourceBrand,
		AttributeKey: "brand",
		Limit:        20,
	}
	query, _ := renderFacet(spec, "1=1", nil)

	if !strings.Contains(query, "LIMIT 20") {
		t.Errorf("brand facet must cap at 20 groups:\n%s", query)
	}
}

func TestRenderFacet_Location(t *testing.T) {
	spec := model.FacetSpec{Key: "location", Source: model.FacetSourceLocation, Limit: 20}
	query, args := renderFacet(spec, "1=1", nil)

	if !strings.Contains(query, "GROUP BY l.location") {
		t.Errorf("query = %s", query)
	}
	if !strings.Contains(query, "l.location IS NOT NULL") {
		t.Error("null locations must be dropped")
	}
	if !strings.Contains(query, "LIMIT 20") {
		t.Error("location facet must cap at 20 groups")
	}
	if len(args) != 0 {
		t.Errorf("location facet adds no args, got %v", args)
	}
}

func TestRenderFacet_PriceBuckets(t *testing.T) {
	spec := model.FacetSpec{Key: "priceRange", Source: model.FacetSourcePriceBucket}
	query, _ := renderFacet(spec, "1=1", nil)

	for _, token := range []string{"'0'", "'1000'", "'5000'", "'10000'", "'25000'", "'50000'", "'100000'"} {
		if !strings.Contains(query, token) {
			t.Errorf("bucket token %s missing:\n%s", token, query)
		}
	}
	if !strings.Contains(query, "ELSE 'Other'") {
		t.Error("price buckets need the Other catch-all")
	}
	if !strings.Contains(query, "ORDER BY MIN(l.price)") {
		t.Error("price buckets surface in boundary order")
	}
}

func TestPriceBucketCase_HighestBoundaryFirst(t *testing.T) {
	expr := priceBucketCase()

	// The CASE must test boundaries from high to low so each price
	// lands in exactly one bucket
	first := strings.Index(expr, "l.price >= 100000")
	last := strings.Index(expr, "l.price >= 0")
	if first == -1 || last == -1 || first > last {
		t.Errorf("boundary order wrong:\n%s", expr)
	}
}
