// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type BaseModel struct {
	gorm.Model
}

// StringSlice is a JSONB column holding a flat list of strings
// (season achievements, trophy case items, nav labels).
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// Scan unmarshals a JSONB column into the slice. Legacy rows sometimes hold a
// double-JSON-encoded value (a JSON string containing a JSON array); those are
// decoded twice rather than rejected.
func (s *StringSlice) Scan(src interface{}) error {
	if src == nil {
		*s = StringSlice{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("StringSlice: expected []byte, got %T", src)
	}
	if len(b) == 0 {
		*s = StringSlice{}
		return nil
	}
	if err := json.Unmarshal(b, s); err == nil {
		return nil
	}
	var inner string
	if err := json.Unmarshal(b, &inner); err != nil {
		return fmt.Errorf("StringSlice: malformed JSON column: %s", string(b))
	}
	return json.Unmarshal([]byte(inner), s)
}

// ContactInfo is the JSONB column for a school's public contact details.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (ci ContactInfo) Value() (driver.Value, error) {
	return json.Marshal(ci)
}

// Scan unmarshals JSONB bytes into the struct.
func (ci *ContactInfo) Scan(src interface{}) error {
	if src == nil {
		*ci = ContactInfo{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ContactInfo: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, ci)
}
