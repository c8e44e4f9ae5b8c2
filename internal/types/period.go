// Package types implements special types for the church administration backend.
package types

import (
	"fmt"
	"time"
)

// Period is a calendar month in a specific year. It is the key every budget,
// expense and donation aggregate is scoped by.
type Period struct {
	Month int `json:"month" example:"3"`   // Calendar month, 1 through 12
	Year  int `json:"year" example:"2025"` // Calendar year
}

// NewPeriod returns a new Period.
func NewPeriod(year, month int) Period {
	return Period{Month: month, Year: year}
}

// PeriodOf returns the Period a time instant falls into, in that time's location.
func PeriodOf(t time.Time) Period {
	year, month, _ := t.Date()
	return Period{Month: int(month), Year: year}
}

// String returns the period formatted as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Valid reports whether the month is in the 1..12 range.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12
}

// Previous returns the immediately preceding calendar month,
// wrapping over the year boundary.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}

	return Period{Month: p.Month - 1, Year: p.Year}
}

// Next returns the immediately following calendar month,
// wrapping over the year boundary.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}

	return Period{Month: p.Month + 1, Year: p.Year}
}

// Bounds returns the first instant of the period and the first instant of the
// following period, both in UTC. Use them as a half-open [start, end) interval.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether the time instant is in the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// MonthName returns the English name of the period's month.
func (p Period) MonthName() string {
	return time.Month(p.Month).String()
}
