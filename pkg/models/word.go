package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Word represents a single learning unit in the catalog
type Word struct {
	ID            int64        `json:"id" db:"id"`
	Word          string       `json:"word" db:"word"`
	Definition    string       `json:"definition" db:"definition"`
	Pronunciation string       `json:"pronunciation" db:"pronunciation"`
	Examples      StringList   `json:"examples" db:"examples"`
	Translations  Translations `json:"translations" db:"translations"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

// StringList stores an ordered list of strings as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Translations maps a language code (e.g. "ru", "kk") to the translated text.
// Stored as a JSON text column.
type Translations map[string]string

// Value implements driver.Valuer
func (t Translations) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translations: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (t *Translations) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into Translations", src)
	}
}
