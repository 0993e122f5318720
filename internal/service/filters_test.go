package service

import (
	"reflect"
	"testing"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

func findPredicate(t *testing.T, preds model.PredicateSet, field, op string) *model.Predicate {
	t.Helper()
	for i := range preds {
		if preds[i].Field == field && preds[i].Op == op {
			return &preds[i]
		}
	}
	return nil
}

func TestCompileFilters_AttributeAndPriceMin(t *testing.T) {
	preds := CompileFilters(map[string]interface{}{
		"brand":    "Samsung",
		"priceMin": float64(1000),
	})

	brand := findPredicate(t, preds, "attributes.brand", model.OpEq)
	if brand == nil {
		t.Fatal("expected eq predicate on attributes.brand")
	}
	if brand.Value != "Samsung" {
		t.Errorf("brand value = %v, want Samsung", brand.Value)
	}

	price := findPredicate(t, preds, model.FieldPrice, model.OpRange)
	if price == nil {
		t.Fatal("expected range predicate on price")
	}
	bounds := price.Value.(model.RangeValue)
	if bounds.GTE == nil || *bounds.GTE != 1000 {
		t.Errorf("GTE = %v, want 1000", bounds.GTE)
	}
	if bounds.LT != nil || bounds.LTE != nil {
		t.Error("expected lower bound only")
	}
}

func TestCompileFilters_PriceBounds(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]interface{}
		gte     *float64
		lt      *float64
		lte     *float64
	}{
		{
			name:    "min and max form a closed interval",
			filters: map[string]interface{}{"priceMin": float64(500), "priceMax": float64(2000)},
			gte:     f(500), lte: f(2000),
		},
		{
			name:    "bucket token sets gte and exclusive lt",
			filters: map[string]interface{}{"priceRange": "5000"},
			gte:     f(5000), lt: f(10000),
		},
		{
			name:    "open-ended top bucket has no upper bound",
			filters: map[string]interface{}{"priceRange": "100000"},
			gte:     f(100000),
		},
		{
			name:    "bucket overrides min, lte from max survives",
			filters: map[string]interface{}{"priceMin": float64(1), "priceMax": float64(99999), "priceRange": "1000"},
			gte:     f(1000), lt: f(5000), lte: f(99999),
		},
		{
			name:    "string bounds are coerced",
			filters: map[string]interface{}{"priceMin": "1000"},
			gte:     f(1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := CompileFilters(tt.filters)
			price := findPredicate(t, preds, model.FieldPrice, model.OpRange)
			if price == nil {
				t.Fatal("expected range predicate on price")
			}
			bounds := price.Value.(model.RangeValue)
			checkBound(t, "GTE", bounds.GTE, tt.gte)
			checkBound(t, "LT", bounds.LT, tt.lt)
			checkBound(t, "LTE", bounds.LTE, tt.lte)
		})
	}
}

func checkBound(t *testing.T, name string, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	if got != nil && *got != *want {
		t.Errorf("%s = %v, want %v", name, *got, *want)
	}
}

func f(v float64) *float64 { return &v }

func TestCompileFilters_MalformedInputDegrades(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]interface{}
	}{
		{"unparsable bound", map[string]interface{}{"priceMin": "not-a-number"}},
		{"unknown bucket token", map[string]interface{}{"priceRange": "banana"}},
		{"nil bound", map[string]interface{}{"priceMax": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := CompileFilters(tt.filters)
			if len(preds) != 0 {
				t.Errorf("expected offending filter to be dropped, got %v", preds)
			}
		})
	}
}

func TestCompileFilters_EmptyValuesSkipped(t *testing.T) {
	preds := CompileFilters(map[string]interface{}{
		"brand":    "",
		"color":    nil,
		"size":     []interface{}{},
		"location": "",
	})
	if len(preds) != 0 {
		t.Errorf("expected empty values to compile to no predicates, got %v", preds)
	}
}

func TestCompileFilters_Location(t *testing.T) {
	preds := CompileFilters(map[string]interface{}{"location": "Mumbai"})

	loc := findPredicate(t, preds, model.FieldLocation, model.OpRegex)
	if loc == nil {
		t.Fatal("expected regex predicate on location")
	}
	if loc.Value != "Mumbai" {
		t.Errorf("location value = %v, want Mumbai", loc.Value)
	}
}

func TestCompileFilters_SetMembership(t *testing.T) {
	preds := CompileFilters(map[string]interface{}{
		"brand": []interface{}{"Samsung", "LG", ""},
	})

	in := findPredicate(t, preds, "attributes.brand", model.OpIn)
	if in == nil {
		t.Fatal("expected in predicate on attributes.brand")
	}
	values := in.Value.([]string)
	if !reflect.DeepEqual(values, []string{"Samsung", "LG"}) {
		t.Errorf("in values = %v, want [Samsung LG]", values)
	}
}

func TestCompileFilters_AllEmptySetDropped(t *testing.T) {
	preds := CompileFilters(map[string]interface{}{
		"brand": []interface{}{"", nil},
	})
	if len(preds) != 0 {
		t.Errorf("expected empty set filter to be dropped, got %v", preds)
	}
}

func TestCompileFilters_ValueCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"integral number", float64(55), "55"},
		{"fractional number", float64(1.5), "1.5"},
		{"boolean", true, "true"},
		{"string passthrough", `55"`, `55"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := CompileFilters(map[string]interface{}{"attr": tt.value})
			eq := findPredicate(t, preds, "attributes.attr", model.OpEq)
			if eq == nil {
				t.Fatal("expected eq predicate")
			}
			if eq.Value != tt.want {
				t.Errorf("coerced value = %v, want %q", eq.Value, tt.want)
			}
		})
	}
}

func TestCompileFilters_Deterministic(t *testing.T) {
	filters := map[string]interface{}{
		"brand":      "Samsung",
		"screenSize": `55"`,
		"technology": "QLED",
		"priceMin":   float64(1000),
		"location":   "Delhi",
	}

	first := CompileFilters(filters)
	for i := 0; i < 20; i++ {
		if got := CompileFilters(filters); !reflect.DeepEqual(got, first) {
			t.Fatalf("compilation is not deterministic: %v != %v", got, first)
		}
	}
}
