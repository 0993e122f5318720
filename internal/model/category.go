package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Attribute value types declared in a category's attribute schema
const (
	AttrTypeString  = "string"
	AttrTypeNumber  = "number"
	AttrTypeBoolean = "boolean"
	AttrTypeArray   = "array"
)

// AttributeConfig declares a single attribute of a category: its value
// type, display label, allowed options and whether it can be filtered on
type AttributeConfig struct {
	Type       string   `json:"type"`
	Label      string   `json:"label"`
	Options    []string `json:"options,omitempty"`
	Required   bool     `json:"required,omitempty"`
	Filterable bool     `json:"filterable,omitempty"`
}

// AttributeSchema maps attribute keys to their declarations.
// Keys are unique within a category; the schema is immutable for the
// duration of a search request.
type AttributeSchema map[string]AttributeConfig

// Value implements driver.Valuer interface
func (s AttributeSchema) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *AttributeSchema) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), s)
	}
	return json.Unmarshal(bytes, s)
}

// Category represents a marketplace category with its attribute schema
type Category struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Slug            string          `json:"slug" db:"slug"`
	AttributeSchema AttributeSchema `json:"attributeSchema" db:"attribute_schema"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
