package estimate

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used everywhere: analytics entries,
// range bounds, JSON output.
const DateLayout = "2006-01-02"

// Date is a calendar date (midnight UTC). It marshals as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
// A malformed string fails with ErrInvalidInput carrying the offending value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: malformed date %q", ErrInvalidInput, s)
	}
	return Date{t.UTC()}, nil
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: malformed date %s", ErrInvalidInput, s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
