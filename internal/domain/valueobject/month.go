// Package valueobject defines immutable domain value types.
package valueobject

import (
	"fmt"
	"regexp"
	"time"
)

// monthKeyPattern is the required shape of a month key. Callers validate
// the format here, at the boundary; downstream code assumes it is valid.
var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month identified by a YYYY-MM key.
type Month struct {
	start time.Time
}

// ParseMonth parses and validates a YYYY-MM month key.
func ParseMonth(key string) (Month, error) {
	if !monthKeyPattern.MatchString(key) {
		return Month{}, fmt.Errorf("invalid month key %q: want YYYY-MM", key)
	}
	start, err := time.Parse("2006-01", key)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return Month{start: start}, nil
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())}
}

// String returns the YYYY-MM key of the month.
func (m Month) String() string {
	return m.start.Format("2006-01")
}

// Bounds returns the half-open interval [first of month, first of next month).
func (m Month) Bounds() (start, end time.Time) {
	return m.start, m.start.AddDate(0, 1, 0)
}

// Prev returns the preceding calendar month.
func (m Month) Prev() Month {
	return Month{start: m.start.AddDate(0, -1, 0)}
}
