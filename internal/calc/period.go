// Package calc implements the pure aggregation engine: charging totals,
// cost spreading, month windows, and the EV-vs-ICE comparison. Functions
// here have no side effects; anything time-dependent takes an explicit
// clock value.
package calc

import (
	"fmt"
	"time"
)

// Period is the active reporting window.
type Period int

// Reporting windows. PeriodAll is the zero value.
const (
	PeriodAll Period = iota
	PeriodThisMonth
	PeriodLastMonth
)

// ParsePeriod maps the CLI/persisted period token to a Period.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "all", "":
		return PeriodAll, nil
	case "this":
		return PeriodThisMonth, nil
	case "last":
		return PeriodLastMonth, nil
	default:
		return PeriodAll, fmt.Errorf("unknown period %q (want all, this, or last)", s)
	}
}

// String returns the token form used by flags and the aux storage key.
func (p Period) String() string {
	switch p {
	case PeriodThisMonth:
		return "this"
	case PeriodLastMonth:
		return "last"
	default:
		return "all"
	}
}

// Label returns the human-readable period name for table footers.
func (p Period) Label() string {
	switch p {
	case PeriodThisMonth:
		return "This month"
	case PeriodLastMonth:
		return "Last month"
	default:
		return "All"
	}
}

// ThisMonthKey returns the YYYY-MM key for the month containing now.
func ThisMonthKey(now time.Time) string {
	return now.Format("2006-01")
}

// LastMonthKey returns the YYYY-MM key for the month before now,
// rolling January back to December of the previous year.
func LastMonthKey(now time.Time) string {
	year, month := now.Year(), int(now.Month())
	month--
	if month < 1 {
		year--
		month = 12
	}
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Matches reports whether a record month key falls inside the period.
// The "unknown" sentinel never matches a month window.
func (p Period) Matches(monthKey string, now time.Time) bool {
	switch p {
	case PeriodThisMonth:
		return monthKey == ThisMonthKey(now)
	case PeriodLastMonth:
		return monthKey == LastMonthKey(now)
	default:
		return true
	}
}
