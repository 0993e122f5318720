package repository

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// listingJoin is the shared FROM clause of every stage. The inner join
// drops listings whose category cannot be resolved.
const listingJoin = "FROM listings l INNER JOIN categories c ON c.id = l.category_id"

// renderMatch renders a predicate set into a parameterized WHERE clause.
// Attribute keys are passed as parameters, never interpolated, since
// they originate from client filter maps.
func renderMatch(match model.PredicateSet) (string, []interface{}) {
	clauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	for _, pred := range match {
		switch pred.Op {
		case model.OpEq:
			switch {
			case pred.Field == model.FieldActive:
				clauses = append(clauses, fmt.Sprintf("l.is_active = $%d", argIndex))
				args = append(args, pred.Value)
				argIndex++
			case pred.Field == model.FieldCategory:
				clauses = append(clauses, fmt.Sprintf("l.category_id = $%d", argIndex))
				args = append(args, pred.Value)
				argIndex++
			case strings.HasPrefix(pred.Field, model.AttributeFieldPrefix):
				key := strings.TrimPrefix(pred.Field, model.AttributeFieldPrefix)
				clauses = append(clauses, fmt.Sprintf("l.attributes->>$%d = $%d", argIndex, argIndex+1))
				args = append(args, key, pred.Value)
				argIndex += 2
			}

		case model.OpIn:
			values, ok := pred.Value.([]string)
			if !ok || len(values) == 0 {
				continue
			}
			key := strings.TrimPrefix(pred.Field, model.AttributeFieldPrefix)
			clauses = append(clauses, fmt.Sprintf("l.attributes->>$%d = ANY($%d)", argIndex, argIndex+1))
			args = append(args, key, pq.Array(values))
			argIndex += 2

		case model.OpRange:
			bounds, ok := pred.Value.(model.RangeValue)
			if !ok || pred.Field != model.FieldPrice {
				continue
			}
			if bounds.GTE != nil {
				clauses = append(clauses, fmt.Sprintf("l.price >= $%d", argIndex))
				args = append(args, *bounds.GTE)
				argIndex++
			}
			if bounds.LT != nil {
				clauses = append(clauses, fmt.Sprintf("l.price < $%d", argIndex))
				args = append(args, *bounds.LT)
				argIndex++
			}
			if bounds.LTE != nil {
				clauses = append(clauses, fmt.Sprintf("l.price <= $%d", argIndex))
				args = append(args, *bounds.LTE)
				argIndex++
			}

		case model.OpRegex:
			clauses = append(clauses, fmt.Sprintf("l.location ~* $%d", argIndex))
			args = append(args, pred.Value)
			argIndex++

		case model.OpTextMatch:
			clauses = append(clauses, fmt.Sprintf("l.search_vector @@ plainto_tsquery('english', $%d)", argIndex))
			args = append(args, pred.Value)
			argIndex++
		}
	}

	return strings.Join(clauses, " AND "), args
}

// matchText extracts the full-text query from a plan's match stage
func matchText(match model.PredicateSet) string {
	for _, pred := range match {
		if pred.Op == model.OpTextMatch {
			if text, ok := pred.Value.(string); ok {
				return text
			}
		}
	}
	return ""
}

// renderSelect renders the result-page query: projection, sort and
// pagination window over the shared match clause
func renderSelect(plan model.ExecutionPlan, where string, args []interface{}) (string, []interface{}) {
	selectArgs := make([]interface{}, len(args))
	copy(selectArgs, args)
	argIndex := len(args) + 1

	columns := `l.id, l.title, l.description, l.price, l.location, l.attributes,
			l.images, l.tags, l.created_at,
			c.name AS category_name, c.slug AS category_slug`
	if plan.IncludeScore {
		columns += fmt.Sprintf(",\n\t\t\tts_rank(l.search_vector, plainto_tsquery('english', $%d)) AS score", argIndex)
		selectArgs = append(selectArgs, matchText(plan.Match))
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT
			%s
		%s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, columns, listingJoin, where, renderSort(plan), argIndex, argIndex+1)
	selectArgs = append(selectArgs, plan.Limit, plan.Offset)

	return query, selectArgs
}

// renderSort maps a sort mode to its ORDER BY expression
func renderSort(plan model.ExecutionPlan) string {
	switch plan.Sort {
	case model.SortPriceAsc:
		return "l.price ASC, l.created_at DESC"
	case model.SortPriceDesc:
		return "l.price DESC, l.created_at DESC"
	case model.SortOldest:
		return "l.created_at ASC"
	case model.SortRelevance:
		if plan.IncludeScore {
			return "score DESC, l.created_at DESC"
		}
		return "l.created_at DESC"
	default:
		return "l.created_at DESC"
	}
}

// renderFacet renders one facet aggregation over the shared match
// clause. Null groups are dropped in SQL; group ordering is count
// descending with a value tiebreak so identical requests aggregate to
// identical option lists.
func renderFacet(spec model.FacetSpec, where string, args []interface{}) (string, []interface{}) {
	facetArgs := make([]interface{}, len(args))
	copy(facetArgs, args)
	argIndex := len(args) + 1

	limitClause := ""
	if spec.Limit > 0 {
		limitClause = fmt.Sprintf(" LIMIT %d", spec.Limit)
	}

	switch spec.Source {
	case model.FacetSourcePriceBucket:
		query := fmt.Sprintf(`
		SELECT %s AS value, COUNT(*) AS count
		%s
		WHERE %s
		GROUP BY 1
		ORDER BY MIN(l.price)
	`, priceBucketCase(), listingJoin, where)
		return query, facetArgs

	case model.FacetSourceLocation:
		query := fmt.Sprintf(`
		SELECT l.location AS value, COUNT(*) AS count
		%s
		WHERE %s AND l.location IS NOT NULL AND l.location <> ''
		GROUP BY l.location
		ORDER BY count DESC, value ASC%s
	`, listingJoin, where, limitClause)
		return query, facetArgs

	default:
		// schema-attribute and brand facets group by one attribute key
		query := fmt.Sprintf(`
		SELECT l.attributes->>$%d AS value, COUNT(*) AS count
		%s
		WHERE %s AND l.attributes->>$%d IS NOT NULL
		GROUP BY 1
		ORDER BY count DESC, value ASC%s
	`, argIndex, listingJoin, where, argIndex, limitClause)
		facetArgs = append(facetArgs, spec.AttributeKey)
		return query, facetArgs
	}
}

// priceBucketCase renders the fixed price buckets as a CASE expression
// emitting each bucket's token
func priceBucketCase() string {
	var b strings.Builder
	b.WriteString("CASE")
	for i := len(model.PriceBuckets) - 1; i >= 0; i-- {
		bucket := model.PriceBuckets[i]
		fmt.Fprintf(&b, " WHEN l.price >= %g THEN '%s'", bucket.Min, bucket.Token)
	}
	b.WriteString(" ELSE 'Other' END")
	return b.String()
}
