package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Preference holds one member's acceptable meetup dates, times and locations.
// There is at most one Preference per (GroupID, MemberID); saving replaces all
// three lists together.
type Preference struct {
	ID         string
	GroupID    string
	MemberID   string
	MemberName string

	// Dates are calendar dates in YYYY-MM-DD form.
	Dates StringList

	// Times are times of day in 24h HH:MM form.
	Times StringList

	// Locations are free-text place names.
	Locations StringList

	CreatedAt int64
	UpdatedAt int64
}

// StringList is a list of strings stored as a JSON array in a single column.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}
