package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// CompileFilters translates a raw client filter map into a normalized
// predicate set. Every rule degrades instead of failing: malformed
// values, unknown bucket tokens and empty values are dropped, never
// surfaced as errors.
//
// Price bounds merge into a single range predicate. Explicit
// priceMin/priceMax are applied first; a priceRange bucket then
// overrides the lower bound and sets an exclusive upper bound, while a
// priceMax upper bound survives the merge. Attribute comparisons are
// type-coercing: values are matched by their string form regardless of
// the declared attribute type.
func CompileFilters(filters map[string]interface{}) model.PredicateSet {
	preds := model.PredicateSet{}
	if len(filters) == 0 {
		return preds
	}

	var price *model.RangeValue

	if v, ok := filters["priceMin"]; ok {
		if f, ok := toFloat(v); ok {
			price = ensureRange(price)
			price.GTE = &f
		}
	}
	if v, ok := filters["priceMax"]; ok {
		if f, ok := toFloat(v); ok {
			price = ensureRange(price)
			price.LTE = &f
		}
	}
	if v, ok := filters["priceRange"]; ok && !isEmptyValue(v) {
		if bucket, ok := model.PriceBucketByToken(coerceString(v)); ok {
			price = ensureRange(price)
			min := bucket.Min
			price.GTE = &min
			if bucket.Max != nil {
				max := *bucket.Max
				price.LT = &max
			}
		}
	}
	if price != nil {
		preds = append(preds, model.Predicate{
			Field: model.FieldPrice,
			Op:    model.OpRange,
			Value: *price,
		})
	}

	// Iterate remaining keys in sorted order so identical filter maps
	// always compile to identical predicate sets.
	keys := make([]string, 0, len(filters))
	for key := range filters {
		switch key {
		case "priceMin", "priceMax", "priceRange":
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := filters[key]
		if isEmptyValue(value) {
			continue
		}

		if key == "location" {
			preds = append(preds, model.Predicate{
				Field: model.FieldLocation,
				Op:    model.OpRegex,
				Value: coerceString(value),
			})
			continue
		}

		field := model.AttributeFieldPrefix + key
		if values, ok := toStringSet(value); ok {
			if len(values) > 0 {
				preds = append(preds, model.Predicate{
					Field: field,
					Op:    model.OpIn,
					Value: values,
				})
			}
			continue
		}

		preds = append(preds, model.Predicate{
			Field: field,
			Op:    model.OpEq,
			Value: coerceString(value),
		})
	}

	return preds
}

func ensureRange(r *model.RangeValue) *model.RangeValue {
	if r == nil {
		return &model.RangeValue{}
	}
	return r
}

// isEmptyValue reports whether a filter value means "filter not set"
func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// toStringSet converts an array filter value into its string members,
// dropping empty entries
func toStringSet(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if isEmptyValue(item) {
				continue
			}
			out = append(out, coerceString(item))
		}
		return out, true
	}
	return nil, false
}

// coerceString renders a filter value in its canonical string form
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toFloat coerces a numeric filter bound; failures drop the bound
func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}
