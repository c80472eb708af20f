package graph

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Properties holds arbitrary key-value pairs attached to a node or edge.
// It round-trips through SQL columns as JSON text.
type Properties map[string]any

// Scan implements sql.Scanner.
func (p *Properties) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*p = Properties{}
		return nil
	case string:
		return json.Unmarshal([]byte(src), p)
	case []byte:
		return json.Unmarshal(src, p)
	default:
		return fmt.Errorf("cannot scan %T into Properties", src)
	}
}

// Value implements driver.Valuer. The map is stored as JSON text so
// both SQLite TEXT and PostgreSQL JSONB columns accept it.
func (p Properties) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	return string(b), nil
}

// Int reads an integer property, tolerating the float64 values
// that JSON decoding produces for numbers.
func (p Properties) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// String reads a string property.
func (p Properties) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}
