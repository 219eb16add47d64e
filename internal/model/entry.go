// Package model defines domain types for ev-log charging entries, vehicle
// costs, and settings.
package model

// ChargeType classifies where (and how expensively) a charge happened.
type ChargeType string

// Charge type domain. Prices in Settings are keyed by the first four.
const (
	ChargePublic    ChargeType = "public"
	ChargePublicExp ChargeType = "public_exp"
	ChargeHome      ChargeType = "home"
	ChargeHomeExp   ChargeType = "home_exp"
	ChargeCustom    ChargeType = "custom"
)

// NormalizeChargeType maps a raw type string into the enum domain.
// The legacy alias "home_cheap" maps to "home"; anything unrecognized
// becomes "custom".
func NormalizeChargeType(raw string) ChargeType {
	switch raw {
	case "home_cheap":
		return ChargeHome
	case string(ChargePublic):
		return ChargePublic
	case string(ChargePublicExp):
		return ChargePublicExp
	case string(ChargeHome):
		return ChargeHome
	case string(ChargeHomeExp):
		return ChargeHomeExp
	default:
		return ChargeCustom
	}
}

// IsPublic reports whether energy at this type was bought at a public charger.
// Public entries never accrue "saved vs public" value.
func (t ChargeType) IsPublic() bool {
	return t == ChargePublic || t == ChargePublicExp
}

// ChargeTypeOrder is the canonical display order for per-type breakdowns.
var ChargeTypeOrder = []ChargeType{
	ChargePublic, ChargePublicExp, ChargeHome, ChargeHomeExp, ChargeCustom,
}

// Attachment is a named link to an external document (invoice, receipt).
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ChargingEntry is one charging session record.
// Date is an ISO calendar date (YYYY-MM-DD); CreatedAt an RFC3339 timestamp.
// Invariant after sanitization: Kwh >= 0 and Price >= 0.
type ChargingEntry struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Type        ChargeType   `json:"type"`
	Price       float64      `json:"price"`
	Kwh         float64      `json:"kwh"`
	Note        string       `json:"note"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   string       `json:"createdAt"`
}

// Cost returns the money spent on this entry.
func (e ChargingEntry) Cost() float64 {
	return e.Kwh * e.Price
}

// MonthKey returns the YYYY-MM bucket for this entry's date.
func (e ChargingEntry) MonthKey() string {
	return MonthKeyFromISO(e.Date)
}

// MonthKeyFromISO derives a YYYY-MM month key from an ISO date string.
// Malformed or short dates fall into the "unknown" bucket, which matches
// no month filter.
func MonthKeyFromISO(iso string) string {
	if len(iso) >= 7 {
		return iso[:7]
	}
	return MonthKeyUnknown
}

// MonthKeyUnknown is the sentinel bucket for records without a usable date.
const MonthKeyUnknown = "unknown"
