package calc

import (
	"testing"

	"github.com/insterion/ev-log/internal/model"
)

func TestSpreadFactor(t *testing.T) {
	tests := []struct {
		spread model.Spread
		period Period
		want   float64
	}{
		{model.SpreadYearly, PeriodAll, 1},
		{model.SpreadYearly, PeriodThisMonth, 1.0 / 12.0},
		{model.SpreadYearly, PeriodLastMonth, 1.0 / 12.0},
		{model.SpreadMonthly, PeriodThisMonth, 1},
		{model.SpreadOneOff, PeriodThisMonth, 1},
		{model.SpreadOneOff, PeriodAll, 1},
	}
	for _, tt := range tests {
		if got := SpreadFactor(tt.spread, tt.period); !approx(got, tt.want) {
			t.Errorf("SpreadFactor(%q, %v) = %v, want %v", tt.spread, tt.period, got, tt.want)
		}
	}
}

func TestCostsTotalsForSpreadsYearlyInMonthlyWindow(t *testing.T) {
	costs := []model.Cost{
		{Vehicle: model.VehicleEV, Category: model.CatInsurance, Amount: 120, Spread: model.SpreadYearly},
	}
	if got := CostsTotalsFor(costs, PeriodThisMonth, model.VehicleEV).Total; !approx(got, 10) {
		t.Errorf("monthly window total = %v, want 10", got)
	}
	if got := CostsTotalsFor(costs, PeriodAll, model.VehicleEV).Total; !approx(got, 120) {
		t.Errorf("lifetime total = %v, want 120", got)
	}
}

func TestCostsTotalsForVehicleFilter(t *testing.T) {
	costs := []model.Cost{
		{Vehicle: model.VehicleEV, Category: model.CatTyres, Amount: 200},
		{Vehicle: model.VehicleICE, Category: model.CatService, Amount: 150},
	}
	if got := CostsTotalsFor(costs, PeriodAll, model.VehicleEV).Total; !approx(got, 200) {
		t.Errorf("ev total = %v, want 200", got)
	}
	if got := CostsTotalsFor(costs, PeriodAll, model.VehicleICE).Total; !approx(got, 150) {
		t.Errorf("ice total = %v, want 150", got)
	}
	if got := CostsTotalsFor(costs, PeriodAll, "").Total; !approx(got, 350) {
		t.Errorf("both total = %v, want 350", got)
	}
}

func TestCostsTotalsByCategory(t *testing.T) {
	costs := []model.Cost{
		{Vehicle: model.VehicleEV, Category: model.CatTyres, Amount: 200},
		{Vehicle: model.VehicleEV, Category: model.CatTyres, Amount: 100},
		{Vehicle: model.VehicleEV, Category: model.CatMOT, Amount: 55},
	}
	got := CostsTotalsFor(costs, PeriodAll, model.VehicleEV)
	tyres := got.ByCategory[model.CatTyres]
	if tyres.Count != 2 || !approx(tyres.Total, 300) {
		t.Errorf("tyres = %+v", tyres)
	}
	if got.ByCategory[model.CatMOT].Count != 1 {
		t.Errorf("mot = %+v", got.ByCategory[model.CatMOT])
	}
}
