package calc

import (
	"testing"
	"time"

	"github.com/insterion/ev-log/internal/model"
)

var testCompare = model.Compare{
	ICEMpg:          45,
	EVMilesPerKwh:   3,
	FuelPrice:       1.50,
	ICEMaintPerMile: 0.03,
}

func TestCompareRealisticFuelModel(t *testing.T) {
	charging := ChargeTotals{Kwh: 100, Cost: 9}
	got := CompareRealistic(testCompare, charging, nil, PeriodAll)

	if !approx(got.Miles, 300) {
		t.Errorf("Miles = %v, want 300", got.Miles)
	}
	// 300 mi / 45 mpg = 6.667 UK gallons -> litres via 4.54609
	wantLitres := 300.0 / 45.0 * 4.54609
	if !approx(got.Litres, wantLitres) {
		t.Errorf("Litres = %v, want %v", got.Litres, wantLitres)
	}
	if !approx(got.FuelCost, wantLitres*1.50) {
		t.Errorf("FuelCost = %v", got.FuelCost)
	}
}

func TestCompareRealisticMaintFallback(t *testing.T) {
	charging := ChargeTotals{Kwh: 100, Cost: 9}
	got := CompareRealistic(testCompare, charging, nil, PeriodAll)

	if got.HasICECosts {
		t.Error("no recorded ICE costs: HasICECosts must be false")
	}
	if !approx(got.ICEMaint, 300*0.03) {
		t.Errorf("ICEMaint = %v, want per-mile estimate 9", got.ICEMaint)
	}
}

func TestCompareRealisticRecordedICECostsWin(t *testing.T) {
	charging := ChargeTotals{Kwh: 100, Cost: 9}
	costs := []model.Cost{
		{Vehicle: model.VehicleICE, Category: model.CatService, Amount: 250},
	}
	got := CompareRealistic(testCompare, charging, costs, PeriodAll)

	if !got.HasICECosts {
		t.Error("recorded ICE costs must set HasICECosts")
	}
	if !approx(got.ICEMaint, 250) {
		t.Errorf("ICEMaint = %v, want recorded 250", got.ICEMaint)
	}
}

func TestCompareRealisticEVCostsIncluded(t *testing.T) {
	charging := ChargeTotals{Kwh: 100, Cost: 9}
	costs := []model.Cost{
		{Vehicle: model.VehicleEV, Category: model.CatTyres, Amount: 180},
	}
	got := CompareRealistic(testCompare, charging, costs, PeriodAll)

	if !approx(got.EVCosts, 180) {
		t.Errorf("EVCosts = %v, want 180", got.EVCosts)
	}
	if !approx(got.EVTotal, 189) {
		t.Errorf("EVTotal = %v, want 189", got.EVTotal)
	}
	if !approx(got.Diff, got.ICETotal-got.EVTotal) {
		t.Error("Diff must be ICETotal - EVTotal")
	}
}

func TestCompareRealisticPerMileGuard(t *testing.T) {
	got := CompareRealistic(testCompare, ChargeTotals{}, nil, PeriodAll)
	if got.EVPerMile != 0 || got.ICEPerMile != 0 {
		t.Errorf("zero miles must yield zero per-mile, got %v / %v", got.EVPerMile, got.ICEPerMile)
	}
}

func TestCompareRealisticClampsDegenerateAssumptions(t *testing.T) {
	bad := model.Compare{ICEMpg: 0, EVMilesPerKwh: 0, FuelPrice: -1, ICEMaintPerMile: -1}
	got := CompareRealistic(bad, ChargeTotals{Kwh: 10, Cost: 1}, nil, PeriodAll)
	if got.Miles != 1 { // 10 kWh * 0.1 floor
		t.Errorf("Miles = %v, want floor-clamped 1", got.Miles)
	}
	if got.FuelCost != 0 || got.ICEMaint != 0 {
		t.Errorf("negative prices must clamp to 0: fuel=%v maint=%v", got.FuelCost, got.ICEMaint)
	}
}

func TestPeriodKeys(t *testing.T) {
	jan := mustTime(t, "2025-01-15T12:00:00Z")
	if got := ThisMonthKey(jan); got != "2025-01" {
		t.Errorf("ThisMonthKey = %q", got)
	}
	if got := LastMonthKey(jan); got != "2024-12" {
		t.Errorf("January rollover: LastMonthKey = %q, want 2024-12", got)
	}
	jul := mustTime(t, "2025-07-01T00:00:00Z")
	if got := LastMonthKey(jul); got != "2025-06" {
		t.Errorf("LastMonthKey = %q, want 2025-06", got)
	}
}

func TestPeriodMatches(t *testing.T) {
	now := mustTime(t, "2025-03-15T12:00:00Z")
	if !PeriodAll.Matches("anything", now) {
		t.Error("all must match everything")
	}
	if !PeriodThisMonth.Matches("2025-03", now) || PeriodThisMonth.Matches("2025-02", now) {
		t.Error("this-month window wrong")
	}
	if !PeriodLastMonth.Matches("2025-02", now) || PeriodLastMonth.Matches("2025-03", now) {
		t.Error("last-month window wrong")
	}
	if PeriodThisMonth.Matches("unknown", now) {
		t.Error("unknown bucket must not match a month window")
	}
}

func TestParsePeriod(t *testing.T) {
	for token, want := range map[string]Period{
		"all": PeriodAll, "": PeriodAll, "this": PeriodThisMonth, "last": PeriodLastMonth,
	} {
		got, err := ParsePeriod(token)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %v, %v", token, got, err)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("unknown token must error")
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return tt
}
