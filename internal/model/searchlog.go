package model

// SearchLogEntry records one executed search for offline analysis
type SearchLogEntry struct {
	SearchID       string  `db:"search_id"`
	Query          string  `db:"query"`
	CategorySlug   string  `db:"category_slug"`
	Filters        JSONMap `db:"filters"`
	ResultCount    int     `db:"result_count"`
	ResponseTimeMs int     `db:"response_time_ms"`
}
