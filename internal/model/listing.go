package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Listing represents a marketplace listing
type Listing struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Price       float64     `json:"price" db:"price"`
	Location    string      `json:"location" db:"location"`
	CategoryID  int64       `json:"category_id" db:"category_id"`
	Attributes  JSONMap     `json:"attributes" db:"attributes"`
	Images      StringArray `json:"images,omitempty" db:"images"`
	Tags        StringArray `json:"tags,omitempty" db:"tags"`
	IsActive    bool        `json:"is_active" db:"is_active"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// CategoryRef is the category information attached to each search result
type CategoryRef struct {
	Name string `json:"name" db:"category_name"`
	Slug string `json:"slug" db:"category_slug"`
}

// ResultItem is a single search result with its joined category and,
// when a text query was supplied, a relevance score
type ResultItem struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Price       float64     `json:"price" db:"price"`
	Location    string      `json:"location" db:"location"`
	Attributes  JSONMap     `json:"attributes" db:"attributes"`
	Images      StringArray `json:"images" db:"images"`
	Tags        StringArray `json:"tags" db:"tags"`
	Category    CategoryRef `json:"category"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	Score       *float64    `json:"score,omitempty" db:"score"`
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// StringArray represents a JSON string array field
type StringArray []string

// Value implements driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), a)
	}
	return json.Unmarshal(bytes, a)
}
