// Package filter narrows entry and cost collections by month window,
// free-text search, charge type, and date range. Filtering is pure: the
// same inputs always produce the same output, and surviving records keep
// their relative order.
package filter

import (
	"strings"
	"time"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/model"
)

// Query is the structured entry filter, applied after the month window.
// Zero values mean "no restriction". Search matches case-insensitively
// against the note and every attachment name and URL; From/To are
// inclusive ISO date bounds (lexicographic compare is date order).
type Query struct {
	Search string
	Type   model.ChargeType
	From   string
	To     string
}

// IsZero reports whether the query restricts nothing.
func (q Query) IsZero() bool {
	return q.Search == "" && q.Type == "" && q.From == "" && q.To == ""
}

// Entries applies the month window for period (evaluated at now), then the
// structured query. The input is not mutated.
func Entries(entries []model.ChargingEntry, period calc.Period, q Query, now time.Time) []model.ChargingEntry {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.ChargingEntry, 0, len(entries))
	for _, e := range entries {
		if !period.Matches(e.MonthKey(), now) {
			continue
		}
		if !matchesSearch(e, search) {
			continue
		}
		if q.Type != "" && e.Type != q.Type {
			continue
		}
		if q.From != "" && e.Date < q.From {
			continue
		}
		if q.To != "" && e.Date > q.To {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Costs applies the month window for period to cost records.
func Costs(costs []model.Cost, period calc.Period, now time.Time) []model.Cost {
	if period == calc.PeriodAll {
		return costs
	}
	out := make([]model.Cost, 0, len(costs))
	for _, c := range costs {
		if period.Matches(c.MonthKey(), now) {
			out = append(out, c)
		}
	}
	return out
}

// matchesSearch checks the note plus every attachment field; a hit in any
// one passes the entry.
func matchesSearch(e model.ChargingEntry, searchLower string) bool {
	if searchLower == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Note), searchLower) {
		return true
	}
	for _, a := range e.Attachments {
		if strings.Contains(strings.ToLower(a.Name), searchLower) ||
			strings.Contains(strings.ToLower(a.URL), searchLower) {
			return true
		}
	}
	return false
}
