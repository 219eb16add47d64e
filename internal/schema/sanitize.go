// Package schema normalizes arbitrary decoded JSON into the canonical
// ev-log state shape. Sanitization is total: any input produces a valid
// State, with malformed fields defaulted and invalid records dropped.
package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insterion/ev-log/internal/model"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// MinIDLen is the shortest identifier accepted from imported data.
// Anything shorter is replaced with a fresh one.
const MinIDLen = 6

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// DefaultState returns the schema defaults used when nothing is stored.
func DefaultState() model.State {
	return model.State{
		Schema: model.SchemaVersion,
		Prices: model.Prices{
			Public:    0.56,
			PublicExp: 0.76,
			Home:      0.09,
			HomeExp:   0.30,
		},
		Investment: model.Investment{Charger: 700, Install: 300},
		Compare: model.Compare{
			ICEMpg:          45,
			EVMilesPerKwh:   3,
			FuelPrice:       1.50,
			ICEMaintPerMile: 0.03,
		},
		Entries: []model.ChargingEntry{},
		Costs:   []model.Cost{},
	}
}

// SanitizeState normalizes raw decoded JSON (of any shape) into a valid
// State. It never fails; non-object input yields the defaults.
func SanitizeState(raw any) model.State {
	return SanitizeStateAt(raw, time.Now())
}

// SanitizeStateAt is SanitizeState with an explicit clock, used for
// defaulting missing dates and createdAt stamps.
func SanitizeStateAt(raw any, now time.Time) model.State {
	st := DefaultState()

	obj, _ := raw.(map[string]any)

	if prices, ok := obj["prices"].(map[string]any); ok {
		st.Prices.Public = pickFinite(prices, st.Prices.Public, "public", "publicPrice")
		st.Prices.PublicExp = pickFinite(prices, st.Prices.PublicExp, "public_exp", "publicExp")
		st.Prices.Home = pickFinite(prices, st.Prices.Home, "home", "cheap", "homeCheap")
		st.Prices.HomeExp = pickFinite(prices, st.Prices.HomeExp, "home_exp", "exp", "homeExpensive")
	}

	if inv, ok := obj["investment"].(map[string]any); ok {
		st.Investment.Charger = pickFinite(inv, st.Investment.Charger, "charger")
		st.Investment.Install = pickFinite(inv, st.Investment.Install, "install")
	}

	if cmp, ok := obj["compare"].(map[string]any); ok {
		st.Compare.ICEMpg = clampRate(pickFinite(cmp, st.Compare.ICEMpg, "ice_mpg"), st.Compare.ICEMpg)
		st.Compare.EVMilesPerKwh = clampRate(pickFinite(cmp, st.Compare.EVMilesPerKwh, "ev_mpkwh"), st.Compare.EVMilesPerKwh)
		st.Compare.FuelPrice = math.Max(0, pickFinite(cmp, st.Compare.FuelPrice, "fuel_price"))
		st.Compare.ICEMaintPerMile = math.Max(0, pickFinite(cmp, st.Compare.ICEMaintPerMile, "ice_maint_per_mile"))
	}

	if arr, ok := obj["entries"].([]any); ok {
		for _, rawEntry := range arr {
			if e, ok := sanitizeRawEntry(rawEntry, now); ok {
				st.Entries = append(st.Entries, e)
			}
		}
	}
	if arr, ok := obj["costs"].([]any); ok {
		for _, rawCost := range arr {
			if c, ok := sanitizeRawCost(rawCost, now); ok {
				st.Costs = append(st.Costs, c)
			}
		}
	}

	model.SortEntries(st.Entries)
	model.SortCosts(st.Costs)
	return st
}

// SanitizeEntry normalizes a single entry, defaulting malformed fields.
// Returns false when the non-negativity invariant fails, in which case
// the entry must be dropped rather than stored.
func SanitizeEntry(e model.ChargingEntry, now time.Time) (model.ChargingEntry, bool) {
	out := e
	if !isoDateRe.MatchString(out.Date) {
		out.Date = now.Format("2006-01-02")
	}
	out.Type = model.NormalizeChargeType(string(e.Type))
	out.Price = finiteOrZero(e.Price)
	out.Kwh = finiteOrZero(e.Kwh)
	out.Note = strings.TrimSpace(e.Note)
	if len(out.ID) < MinIDLen {
		out.ID = NewID()
	}
	if len(out.CreatedAt) < 10 {
		out.CreatedAt = now.UTC().Format(time.RFC3339)
	}
	out.Attachments = SanitizeAttachments(e.Attachments)

	if out.Kwh < 0 || out.Price < 0 {
		return model.ChargingEntry{}, false
	}
	return out, true
}

// SanitizeCost normalizes a single cost record.
// Returns false when the amount invariant fails.
func SanitizeCost(c model.Cost, now time.Time) (model.Cost, bool) {
	out := c
	if !isoDateRe.MatchString(out.Date) {
		out.Date = now.Format("2006-01-02")
	}
	out.Category = model.NormalizeCategory(string(c.Category))
	out.Vehicle = model.NormalizeVehicle(string(c.Vehicle))
	out.Spread = model.NormalizeSpread(string(c.Spread))
	out.Amount = finiteOrZero(c.Amount)
	out.Miles = normalizeMiles(c.Miles)
	out.Note = strings.TrimSpace(c.Note)
	if len(out.ID) < MinIDLen {
		out.ID = NewID()
	}
	if len(out.CreatedAt) < 10 {
		out.CreatedAt = now.UTC().Format(time.RFC3339)
	}
	out.Attachments = SanitizeAttachments(c.Attachments)

	if out.Amount < 0 {
		return model.Cost{}, false
	}
	return out, true
}

// SanitizeAttachments trims each attachment and drops any with neither
// a name nor a URL. Always returns a non-nil slice.
func SanitizeAttachments(atts []model.Attachment) []model.Attachment {
	out := make([]model.Attachment, 0, len(atts))
	for _, a := range atts {
		name := strings.TrimSpace(a.Name)
		url := strings.TrimSpace(a.URL)
		if name == "" && url == "" {
			continue
		}
		out = append(out, model.Attachment{Name: name, URL: url})
	}
	return out
}

func sanitizeRawEntry(raw any, now time.Time) (model.ChargingEntry, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.ChargingEntry{}, false
	}
	return SanitizeEntry(model.ChargingEntry{
		ID:          asString(m["id"]),
		Date:        asString(m["date"]),
		Type:        model.ChargeType(asString(m["type"])),
		Price:       asNum(m["price"]),
		Kwh:         asNum(m["kwh"]),
		Note:        asString(m["note"]),
		Attachments: rawAttachments(m["attachments"]),
		CreatedAt:   asString(m["createdAt"]),
	}, now)
}

func sanitizeRawCost(raw any, now time.Time) (model.Cost, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.Cost{}, false
	}
	return SanitizeCost(model.Cost{
		ID:          asString(m["id"]),
		Date:        asString(m["date"]),
		Category:    model.Category(asString(m["category"])),
		Amount:      asNum(m["amount"]),
		Miles:       rawMiles(m["miles"]),
		Note:        asString(m["note"]),
		Vehicle:     model.Vehicle(asString(m["vehicle"])),
		Spread:      model.Spread(asString(m["spread"])),
		Attachments: rawAttachments(m["attachments"]),
		CreatedAt:   asString(m["createdAt"]),
	}, now)
}

func rawAttachments(raw any) []model.Attachment {
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Attachment, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Attachment{
			Name: asString(m["name"]),
			URL:  asString(m["url"]),
		})
	}
	return out
}

// rawMiles accepts legacy numeric miles as well as strings.
func rawMiles(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// normalizeMiles rounds to a whole number and clamps at zero, keeping the
// value as a string ("" means not recorded).
func normalizeMiles(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	n := int64(math.Round(f))
	if n < 0 {
		n = 0
	}
	return strconv.FormatInt(n, 10)
}

// pickFinite returns the first finite numeric value among the candidate
// keys, else the default. This is the alias-resolution rule for settings
// fields that changed names across old schemas.
func pickFinite(m map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := toFinite(v); ok {
				return f
			}
		}
	}
	return def
}

// clampRate treats non-positive rates as absent and enforces the 0.1 floor
// used by the comparison math to avoid division blowups.
func clampRate(v, def float64) float64 {
	if v <= 0 {
		v = def
	}
	return math.Max(0.1, v)
}

func toFinite(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asNum mirrors the historical "parse or zero" coercion rule.
func asNum(v any) float64 {
	f, ok := toFinite(v)
	if !ok {
		return 0
	}
	return f
}
