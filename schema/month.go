package schema

import (
	"fmt"
	"time"
)

// Month is a calendar month in "2006-01" form. The lexical order of the
// string form matches chronological order, so months sort without parsing.
type Month string

// monthLayout is the wire format for months in the tabular dataset.
const monthLayout = "2006-01"

// ParseMonth validates and normalizes a month string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month(t.Format(monthLayout)), nil
}

// MonthOf truncates a time to its calendar month.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// Time returns the first day of the month in UTC.
func (m Month) Time() time.Time {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	return MonthOf(m.Time().AddDate(0, 1, 0))
}

// Before reports whether m precedes other chronologically.
func (m Month) Before(other Month) bool {
	return m < other
}

// Label returns a human-friendly form such as "Feb 2025".
func (m Month) Label() string {
	t := m.Time()
	if t.IsZero() {
		return string(m)
	}
	return t.Format("Jan 2006")
}

// MonthNumber returns the 1-12 month number, or 0 for invalid months.
func (m Month) MonthNumber() int {
	t := m.Time()
	if t.IsZero() {
		return 0
	}
	return int(t.Month())
}

// MonthsFrom returns n consecutive months starting at start.
func MonthsFrom(start Month, n int) []Month {
	months := make([]Month, 0, n)
	cur := start
	for range n {
		months = append(months, cur)
		cur = cur.Next()
	}
	return months
}
