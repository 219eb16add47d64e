package calc

import "github.com/insterion/ev-log/internal/model"

// TypeTotals holds the per-charge-type slice of a totals computation.
type TypeTotals struct {
	Kwh   float64
	Cost  float64
	Count int
}

// ChargeTotals is the aggregate over a set of charging entries.
// Saved is the notional amount not spent versus buying every non-public
// kWh at the base public price; it goes negative when an entry's price
// exceeds that reference.
type ChargeTotals struct {
	Kwh             float64
	Cost            float64
	Saved           float64
	PublicCost      float64
	ByType          map[model.ChargeType]TypeTotals
	BasePublicPrice float64
}

// Totals computes kWh, spend, public spend, savings, and the per-type
// breakdown for the given entries. The entries may be any subset of the
// state (already month- or query-filtered).
func Totals(prices model.Prices, entries []model.ChargingEntry) ChargeTotals {
	totals := ChargeTotals{
		ByType:          make(map[model.ChargeType]TypeTotals),
		BasePublicPrice: prices.Public,
	}

	for _, e := range entries {
		cost := e.Kwh * e.Price
		totals.Kwh += e.Kwh
		totals.Cost += cost

		bt := totals.ByType[e.Type]
		bt.Kwh += e.Kwh
		bt.Cost += cost
		bt.Count++
		totals.ByType[e.Type] = bt

		if e.Type.IsPublic() {
			totals.PublicCost += cost
		} else {
			totals.Saved += (totals.BasePublicPrice - e.Price) * e.Kwh
		}
	}

	return totals
}

// EntrySaved returns one entry's contribution to the saved metric:
// zero for public entries, (base − price) × kWh otherwise.
func EntrySaved(basePublicPrice float64, e model.ChargingEntry) float64 {
	if e.Type.IsPublic() {
		return 0
	}
	return (basePublicPrice - e.Price) * e.Kwh
}

// PaybackRemaining is the charger investment still to be recovered:
// one-time investment plus public charging spend, minus savings.
// Non-positive means the hardware has paid for itself.
func PaybackRemaining(inv model.Investment, lifetime ChargeTotals) float64 {
	return inv.Total() + lifetime.PublicCost - lifetime.Saved
}
