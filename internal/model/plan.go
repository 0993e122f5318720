package model

// Predicate operators
const (
	OpEq        = "eq"
	OpIn        = "in"
	OpRange     = "range"
	OpRegex     = "regex"
	OpTextMatch = "textMatch"
)

// Well-known predicate fields. Attribute predicates use the
// "attributes." prefix followed by the attribute key.
const (
	FieldActive   = "isActive"
	FieldPrice    = "price"
	FieldLocation = "location"
	FieldCategory = "categoryId"
	FieldText     = "text"

	AttributeFieldPrefix = "attributes."
)

// RangeValue is the value of a range predicate. Bounds are optional;
// at most one of LT/LTE is set per bound side.
type RangeValue struct {
	GTE *float64
	LT  *float64
	LTE *float64
}

// Predicate is a single normalized, storage-agnostic match condition
type Predicate struct {
	Field string
	Op    string
	Value interface{}
}

// PredicateSet is the normalized set of match conditions derived from a
// request's text/category/filter inputs. At most one range predicate
// exists per field; in predicates never contain an empty set.
type PredicateSet []Predicate

// Facet sources
const (
	FacetSourceAttribute   = "schema-attribute"
	FacetSourcePriceBucket = "price-bucket"
	FacetSourceLocation    = "location"
	FacetSourceBrand       = "brand"
)

// FacetSpec describes one facet computation: what to aggregate over the
// filtered population. Counts are produced only by execution.
type FacetSpec struct {
	Key       string
	Label     string
	ValueType string
	Source    string
	// AttributeKey is the attribute to group by for schema-attribute
	// and brand facets
	AttributeKey string
	// Limit caps the number of groups returned; 0 means no cap
	Limit int
}

// ExecutionPlan is the ordered description of match, join, sort,
// pagination and facet aggregation stages, executed by the storage
// adapter in one logical call. The match stage is shared between the
// result page and every facet computation.
type ExecutionPlan struct {
	Match PredicateSet
	Sort  string
	// IncludeScore requests a relevance score in the projection; it is
	// set only when a text query was supplied
	IncludeScore bool
	Offset       int
	Limit        int
	Facets       []FacetSpec
}

// FacetCount is one raw aggregation group returned by execution
type FacetCount struct {
	Value string
	Count int
}

// ExecutionResult is the raw output of one combined execution: the
// paginated result rows, the total match count, and per-facet groups,
// all computed against a single consistent snapshot
type ExecutionResult struct {
	Results     []ResultItem
	Total       int
	FacetCounts map[string][]FacetCount
}

// PriceBucket is one predefined price range. Max is nil for the
// open-ended top bucket.
type PriceBucket struct {
	Token string
	Min   float64
	Max   *float64
}

func f64(v float64) *float64 { return &v }

// PriceBuckets is the fixed table of predefined price ranges, shared by
// the priceRange filter and the price-range facet
var PriceBuckets = []PriceBucket{
	{Token: "0", Min: 0, Max: f64(1000)},
	{Token: "1000", Min: 1000, Max: f64(5000)},
	{Token: "5000", Min: 5000, Max: f64(10000)},
	{Token: "10000", Min: 10000, Max: f64(25000)},
	{Token: "25000", Min: 25000, Max: f64(50000)},
	{Token: "50000", Min: 50000, Max: f64(100000)},
	{Token: "100000", Min: 100000},
}

// PriceBucketByToken looks up a predefined price range by its token
func PriceBucketByToken(token string) (PriceBucket, bool) {
	for _, b := range PriceBuckets {
		if b.Token == token {
			return b, true
		}
	}
	return PriceBucket{}, false
}
