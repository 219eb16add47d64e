package calc

import "github.com/insterion/ev-log/internal/model"

// CategoryTotals holds the per-category slice of a costs computation.
type CategoryTotals struct {
	Total float64
	Count int
}

// CostsTotals is the spread-adjusted aggregate over a set of cost records.
type CostsTotals struct {
	Total      float64
	ByCategory map[model.Category]CategoryTotals
}

// SpreadFactor returns the share of a cost's amount that counts toward the
// given reporting period. Lifetime views always count costs in full; in a
// single-month window a yearly cost contributes one twelfth.
func SpreadFactor(spread model.Spread, period Period) float64 {
	if period == PeriodAll {
		return 1
	}
	if spread == model.SpreadYearly {
		return 1.0 / 12.0
	}
	return 1
}

// CostsTotalsFor sums cost records with the period's spread factor applied,
// optionally restricted to one vehicle ("" means both). The costs must
// already be filtered to the period's month window by the caller.
func CostsTotalsFor(costs []model.Cost, period Period, vehicle model.Vehicle) CostsTotals {
	totals := CostsTotals{ByCategory: make(map[model.Category]CategoryTotals)}

	for _, c := range costs {
		if vehicle != "" && c.Vehicle != vehicle {
			continue
		}
		amount := c.Amount * SpreadFactor(c.Spread, period)
		totals.Total += amount

		bc := totals.ByCategory[c.Category]
		bc.Total += amount
		bc.Count++
		totals.ByCategory[c.Category] = bc
	}

	return totals
}
