// internal/domain/billing/date.go
package billing

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day without a time-of-day component. It marshals to and
// from JSON as "YYYY-MM-DD", which is how due dates and reference dates cross
// the HTTP surface.
type Date struct {
	t time.Time
}

// NewDate builds a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// DaysUntil returns the signed number of whole days from ref to d.
// Negative when d is before ref.
func (d Date) DaysUntil(ref Date) int {
	return int(d.t.Sub(ref.t).Hours() / 24)
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports whether both values name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String returns the ISO form, e.g. "2024-03-10".
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// FormatBR returns the Brazilian day-first form, e.g. "10/03/2024".
func (d Date) FormatBR() string {
	return d.t.Format("02/01/2006")
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" strings and null.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	*d = DateOf(parsed)
	return nil
}
