package calc

import (
	"math"

	"github.com/insterion/ev-log/internal/model"
)

// LitresPerUKGallon converts imperial gallons to litres.
const LitresPerUKGallon = 4.54609

// iceCostsEpsilon decides whether any real ICE costs were recorded for the
// period, versus falling back to the per-mile maintenance estimate.
const iceCostsEpsilon = 0.0001

// Comparison is the EV-vs-petrol cost model for one reporting period.
// Diff is positive when the EV came out cheaper.
type Comparison struct {
	Miles float64

	EVCosts float64
	EVTotal float64

	Litres   float64
	FuelCost float64
	// ICECosts is the recorded ICE spend; HasICECosts reports whether it
	// was used for maintenance or the per-mile fallback applied instead.
	ICECosts    float64
	HasICECosts bool
	ICEMaint    float64
	ICETotal    float64

	Diff       float64
	EVPerMile  float64
	ICEPerMile float64
}

// CompareRealistic models driving the period's charged energy in the EV
// versus covering the same miles in the reference petrol car. charging is
// the period's charging totals; costs the period's cost records (already
// month-filtered), spread-adjusted per the period.
func CompareRealistic(cmp model.Compare, charging ChargeTotals, costs []model.Cost, period Period) Comparison {
	out := Comparison{}

	// Assumptions are clamped on load, but a hand-built Compare must not
	// divide by zero either.
	evMilesPerKwh := math.Max(0.1, cmp.EVMilesPerKwh)
	iceMpg := math.Max(0.1, cmp.ICEMpg)
	fuelPrice := math.Max(0, cmp.FuelPrice)
	maintPerMile := math.Max(0, cmp.ICEMaintPerMile)

	out.Miles = charging.Kwh * evMilesPerKwh

	out.EVCosts = CostsTotalsFor(costs, period, model.VehicleEV).Total
	out.EVTotal = charging.Cost + out.EVCosts

	ukGallons := out.Miles / iceMpg
	out.Litres = ukGallons * LitresPerUKGallon
	out.FuelCost = out.Litres * fuelPrice

	iceCosts := CostsTotalsFor(costs, period, model.VehicleICE)
	out.ICECosts = iceCosts.Total
	out.HasICECosts = iceCosts.Total > iceCostsEpsilon
	if out.HasICECosts {
		out.ICEMaint = iceCosts.Total
	} else {
		out.ICEMaint = out.Miles * maintPerMile
	}

	out.ICETotal = out.FuelCost + out.ICEMaint
	out.Diff = out.ICETotal - out.EVTotal

	if out.Miles > 0 {
		out.EVPerMile = out.EVTotal / out.Miles
		out.ICEPerMile = out.ICETotal / out.Miles
	}

	return out
}
