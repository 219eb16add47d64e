package model

// Vehicle tags a cost as belonging to the EV or the reference petrol car.
type Vehicle string

// Vehicle domain.
const (
	VehicleEV  Vehicle = "ev"
	VehicleICE Vehicle = "ice"
)

// NormalizeVehicle maps a raw vehicle string into the enum domain.
// Anything that is not exactly "ice" is the EV.
func NormalizeVehicle(raw string) Vehicle {
	if raw == string(VehicleICE) {
		return VehicleICE
	}
	return VehicleEV
}

// Category classifies a non-charging vehicle expense.
type Category string

// Cost category domain.
const (
	CatTyres       Category = "tyres"
	CatBrakes      Category = "brakes"
	CatService     Category = "service"
	CatMOT         Category = "mot"
	CatInsurance   Category = "insurance"
	CatTax         Category = "tax"
	CatRepairs     Category = "repairs"
	CatAccessories Category = "accessories"
	CatOther       Category = "other"
)

// CategoryOrder is the canonical display order for category breakdowns.
var CategoryOrder = []Category{
	CatTyres, CatBrakes, CatService, CatMOT, CatInsurance,
	CatTax, CatRepairs, CatAccessories, CatOther,
}

// NormalizeCategory maps a raw category string into the enum domain,
// falling back to "other".
func NormalizeCategory(raw string) Category {
	for _, c := range CategoryOrder {
		if raw == string(c) {
			return c
		}
	}
	return CatOther
}

// Spread describes how a cost's amount is amortized when viewing a monthly
// window instead of the lifetime total.
type Spread string

// Spread domain.
const (
	SpreadOneOff  Spread = "oneoff"
	SpreadMonthly Spread = "monthly"
	SpreadYearly  Spread = "yearly"
)

// NormalizeSpread maps a raw spread string into the enum domain,
// falling back to "oneoff".
func NormalizeSpread(raw string) Spread {
	switch raw {
	case string(SpreadMonthly):
		return SpreadMonthly
	case string(SpreadYearly):
		return SpreadYearly
	default:
		return SpreadOneOff
	}
}

// Cost is one ancillary vehicle expense record.
// Miles is an odometer reading kept as a normalized integer string, empty
// when not recorded. Invariant after sanitization: Amount >= 0.
type Cost struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Category    Category     `json:"category"`
	Amount      float64      `json:"amount"`
	Miles       string       `json:"miles"`
	Note        string       `json:"note"`
	Vehicle     Vehicle      `json:"vehicle"`
	Spread      Spread       `json:"spread"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   string       `json:"createdAt"`
}

// MonthKey returns the YYYY-MM bucket for this cost's date.
func (c Cost) MonthKey() string {
	return MonthKeyFromISO(c.Date)
}
