package model

import "sort"

// SchemaVersion is the current persisted state schema.
const SchemaVersion = 4

// Prices holds the per-kWh unit price for each non-custom charge type.
type Prices struct {
	Public    float64 `json:"public"`
	PublicExp float64 `json:"public_exp"`
	Home      float64 `json:"home"`
	HomeExp   float64 `json:"home_exp"`
}

// For returns the configured unit price for a charge type (0 for custom).
func (p Prices) For(t ChargeType) float64 {
	switch t {
	case ChargePublic:
		return p.Public
	case ChargePublicExp:
		return p.PublicExp
	case ChargeHome:
		return p.Home
	case ChargeHomeExp:
		return p.HomeExp
	default:
		return 0
	}
}

// Investment holds one-time charger hardware and installation spend.
type Investment struct {
	Charger float64 `json:"charger"`
	Install float64 `json:"install"`
}

// Total returns the combined one-time investment.
func (inv Investment) Total() float64 {
	return inv.Charger + inv.Install
}

// Compare holds the EV-vs-ICE comparison assumptions.
type Compare struct {
	ICEMpg          float64 `json:"ice_mpg"`
	EVMilesPerKwh   float64 `json:"ev_mpkwh"`
	FuelPrice       float64 `json:"fuel_price"`
	ICEMaintPerMile float64 `json:"ice_maint_per_mile"`
}

// State is the canonical in-memory and persisted shape of all data.
// Entries and Costs are kept in the stable record order at all times.
type State struct {
	Schema     int             `json:"schema"`
	Prices     Prices          `json:"prices"`
	Investment Investment      `json:"investment"`
	Compare    Compare         `json:"compare"`
	Entries    []ChargingEntry `json:"entries"`
	Costs      []Cost          `json:"costs"`
}

// recordLess is the stable total order shared by entries and costs:
// date ascending, then createdAt, then id. IDs are unique after
// sanitization, so no two distinct records compare equal.
func recordLess(dateA, createdA, idA, dateB, createdB, idB string) bool {
	if dateA != dateB {
		return dateA < dateB
	}
	if createdA != createdB {
		return createdA < createdB
	}
	return idA < idB
}

// SortEntries sorts entries in place into the stable record order.
func SortEntries(entries []ChargingEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return recordLess(
			entries[i].Date, entries[i].CreatedAt, entries[i].ID,
			entries[j].Date, entries[j].CreatedAt, entries[j].ID,
		)
	})
}

// SortCosts sorts costs in place into the stable record order.
func SortCosts(costs []Cost) {
	sort.Slice(costs, func(i, j int) bool {
		return recordLess(
			costs[i].Date, costs[i].CreatedAt, costs[i].ID,
			costs[j].Date, costs[j].CreatedAt, costs[j].ID,
		)
	})
}

// EntryLess reports whether a sorts before b in the stable record order.
func EntryLess(a, b ChargingEntry) bool {
	return recordLess(a.Date, a.CreatedAt, a.ID, b.Date, b.CreatedAt, b.ID)
}

// CostLess reports whether a sorts before b in the stable record order.
func CostLess(a, b Cost) bool {
	return recordLess(a.Date, a.CreatedAt, a.ID, b.Date, b.CreatedAt, b.ID)
}

// LatestEntry returns the most recently created entry, preferring CreatedAt
// and falling back to the calendar date. Returns false when there are none.
func LatestEntry(entries []ChargingEntry) (ChargingEntry, bool) {
	if len(entries) == 0 {
		return ChargingEntry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if recencyKey(best) < recencyKey(e) {
			best = e
		}
	}
	return best, true
}

func recencyKey(e ChargingEntry) string {
	if e.CreatedAt != "" {
		return e.CreatedAt
	}
	// Dates sort correctly against RFC3339 timestamps up to their length.
	return e.Date
}

// RecentKwhValues returns up to limit distinct positive kWh amounts,
// most recent first. Used to prefill the add form with likely values.
func RecentKwhValues(entries []ChargingEntry, limit int) []float64 {
	byRecency := make([]ChargingEntry, len(entries))
	copy(byRecency, entries)
	sort.Slice(byRecency, func(i, j int) bool {
		return recencyKey(byRecency[i]) > recencyKey(byRecency[j])
	})

	seen := make(map[float64]struct{})
	var out []float64
	for _, e := range byRecency {
		if e.Kwh <= 0 {
			continue
		}
		if _, ok := seen[e.Kwh]; ok {
			continue
		}
		seen[e.Kwh] = struct{}{}
		out = append(out, e.Kwh)
		if len(out) >= limit {
			break
		}
	}
	return out
}
