package schema

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/insterion/ev-log/internal/model"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestSanitizeStateNonObjectYieldsDefaults(t *testing.T) {
	for _, raw := range []any{nil, "junk", 42.0, []any{"a"}, true} {
		st := SanitizeStateAt(raw, testNow)
		if !reflect.DeepEqual(st, DefaultState()) {
			t.Errorf("SanitizeStateAt(%v) != defaults", raw)
		}
	}
}

func TestSanitizeStateDefaults(t *testing.T) {
	st := DefaultState()
	if st.Schema != 4 {
		t.Errorf("schema = %d, want 4", st.Schema)
	}
	if st.Prices.Public != 0.56 || st.Prices.Home != 0.09 {
		t.Errorf("price defaults wrong: %+v", st.Prices)
	}
	if st.Investment.Total() != 1000 {
		t.Errorf("investment total = %v, want 1000", st.Investment.Total())
	}
	if st.Entries == nil || st.Costs == nil {
		t.Error("collections must be non-nil")
	}
}

func TestPriceAliasResolution(t *testing.T) {
	raw := map[string]any{
		"prices": map[string]any{
			"publicPrice":   0.60,
			"cheap":         0.07,
			"exp":           0.35,
			"homeExpensive": 0.99, // loses to "exp", which comes first
		},
	}
	st := SanitizeStateAt(raw, testNow)
	if st.Prices.Public != 0.60 {
		t.Errorf("publicPrice alias: got %v", st.Prices.Public)
	}
	if st.Prices.Home != 0.07 {
		t.Errorf("cheap alias: got %v", st.Prices.Home)
	}
	if st.Prices.HomeExp != 0.35 {
		t.Errorf("exp alias precedence: got %v", st.Prices.HomeExp)
	}
	if st.Prices.PublicExp != 0.76 {
		t.Errorf("missing field must keep default: got %v", st.Prices.PublicExp)
	}
}

func TestPriceStringCoercion(t *testing.T) {
	raw := map[string]any{
		"prices": map[string]any{"home": "0.12", "public": "not a number"},
	}
	st := SanitizeStateAt(raw, testNow)
	if st.Prices.Home != 0.12 {
		t.Errorf("string price: got %v", st.Prices.Home)
	}
	if st.Prices.Public != 0.56 {
		t.Errorf("unparseable price must keep default: got %v", st.Prices.Public)
	}
}

func TestCompareClamping(t *testing.T) {
	raw := map[string]any{
		"compare": map[string]any{
			"ice_mpg":            0.0,
			"ev_mpkwh":           -2.0,
			"fuel_price":         -1.0,
			"ice_maint_per_mile": -0.5,
		},
	}
	st := SanitizeStateAt(raw, testNow)
	if st.Compare.ICEMpg != 45 {
		t.Errorf("zero mpg must fall back to default: got %v", st.Compare.ICEMpg)
	}
	if st.Compare.EVMilesPerKwh != 3 {
		t.Errorf("negative mpkwh must fall back to default: got %v", st.Compare.EVMilesPerKwh)
	}
	if st.Compare.FuelPrice != 0 {
		t.Errorf("negative fuel price must clamp to 0: got %v", st.Compare.FuelPrice)
	}
	if st.Compare.ICEMaintPerMile != 0 {
		t.Errorf("negative maint must clamp to 0: got %v", st.Compare.ICEMaintPerMile)
	}
}

func TestSanitizeEntryDefaultsAndRepairs(t *testing.T) {
	e, ok := SanitizeEntry(model.ChargingEntry{
		ID:   "abc", // too short
		Date: "15/03/2025",
		Type: "turbo",
		Note: "  padded  ",
		Kwh:  12,
	}, testNow)
	if !ok {
		t.Fatal("valid entry rejected")
	}
	if e.Date != "2025-03-15" {
		t.Errorf("malformed date must default to today: got %q", e.Date)
	}
	if e.Type != model.ChargeCustom {
		t.Errorf("unknown type: got %q", e.Type)
	}
	if len(e.ID) < MinIDLen || e.ID == "abc" {
		t.Errorf("short id must be regenerated: got %q", e.ID)
	}
	if e.Note != "padded" {
		t.Errorf("note must be trimmed: got %q", e.Note)
	}
	if e.CreatedAt != "2025-03-15T12:00:00Z" {
		t.Errorf("createdAt must default to now: got %q", e.CreatedAt)
	}
	if e.Attachments == nil {
		t.Error("attachments must be non-nil")
	}
}

func TestSanitizeEntryRejectsNegatives(t *testing.T) {
	if _, ok := SanitizeEntry(model.ChargingEntry{Kwh: -1}, testNow); ok {
		t.Error("negative kwh must be rejected")
	}
	if _, ok := SanitizeEntry(model.ChargingEntry{Price: -0.5}, testNow); ok {
		t.Error("negative price must be rejected")
	}
}

func TestSanitizeEntryLegacyTypeAlias(t *testing.T) {
	e, ok := SanitizeEntry(model.ChargingEntry{Type: "home_cheap", Kwh: 1}, testNow)
	if !ok || e.Type != model.ChargeHome {
		t.Errorf("home_cheap must map to home: got %q ok=%v", e.Type, ok)
	}
}

func TestSanitizeCostMilesNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.6", "1235"},
		{"-50", "0"},
		{"", ""},
		{"garbage", ""},
		{"  42 ", "42"},
	}
	for _, tt := range tests {
		c, ok := SanitizeCost(model.Cost{Amount: 10, Miles: tt.in}, testNow)
		if !ok {
			t.Fatalf("miles %q: cost rejected", tt.in)
		}
		if c.Miles != tt.want {
			t.Errorf("miles %q = %q, want %q", tt.in, c.Miles, tt.want)
		}
	}
}

func TestSanitizeCostEnumFallbacks(t *testing.T) {
	c, ok := SanitizeCost(model.Cost{
		Amount:   50,
		Category: "wheels",
		Vehicle:  "boat",
		Spread:   "weekly",
	}, testNow)
	if !ok {
		t.Fatal("cost rejected")
	}
	if c.Category != model.CatOther {
		t.Errorf("category fallback: got %q", c.Category)
	}
	if c.Vehicle != model.VehicleEV {
		t.Errorf("vehicle fallback: got %q", c.Vehicle)
	}
	if c.Spread != model.SpreadOneOff {
		t.Errorf("spread fallback: got %q", c.Spread)
	}
}

func TestSanitizeAttachmentsDropsEmpty(t *testing.T) {
	atts := SanitizeAttachments([]model.Attachment{
		{Name: "  ", URL: " "},
		{Name: " invoice ", URL: " https://x "},
		{Name: "", URL: "https://y"},
	})
	if len(atts) != 2 {
		t.Fatalf("got %d attachments, want 2", len(atts))
	}
	if atts[0].Name != "invoice" || atts[0].URL != "https://x" {
		t.Errorf("trim failed: %+v", atts[0])
	}
}

func TestSanitizeStateDropsInvalidRecordsKeepsRest(t *testing.T) {
	raw := map[string]any{
		"entries": []any{
			map[string]any{"id": "aaaaaa", "date": "2025-01-01", "type": "home", "kwh": 5.0, "price": 0.09},
			map[string]any{"id": "bbbbbb", "date": "2025-01-02", "type": "home", "kwh": -5.0},
			"not an object",
		},
		"costs": []any{
			map[string]any{"id": "cccccc", "date": "2025-01-03", "category": "tyres", "amount": -1.0},
			map[string]any{"id": "dddddd", "date": "2025-01-03", "category": "tyres", "amount": 300.0},
		},
	}
	st := SanitizeStateAt(raw, testNow)
	if len(st.Entries) != 1 || st.Entries[0].ID != "aaaaaa" {
		t.Errorf("entries = %+v, want only aaaaaa", st.Entries)
	}
	if len(st.Costs) != 1 || st.Costs[0].ID != "dddddd" {
		t.Errorf("costs = %+v, want only dddddd", st.Costs)
	}
}

func TestSanitizeStateSortsRecords(t *testing.T) {
	raw := map[string]any{
		"entries": []any{
			map[string]any{"id": "zzzzzz", "date": "2025-02-01", "kwh": 1.0, "createdAt": "2025-02-01T10:00:00Z"},
			map[string]any{"id": "aaaaaa", "date": "2025-01-01", "kwh": 1.0, "createdAt": "2025-01-01T10:00:00Z"},
		},
	}
	st := SanitizeStateAt(raw, testNow)
	if st.Entries[0].ID != "aaaaaa" {
		t.Errorf("entries not sorted by date: first is %q", st.Entries[0].ID)
	}
}

func TestSerializeDecodeRoundTrip(t *testing.T) {
	st := DefaultState()
	st.Entries = []model.ChargingEntry{
		{
			ID: "abc123", Date: "2025-02-10", Type: model.ChargeHome,
			Price: 0.09, Kwh: 32.5, Note: "overnight",
			Attachments: []model.Attachment{{Name: "invoice", URL: "https://x/i.pdf"}},
			CreatedAt:   "2025-02-10T08:00:00Z",
		},
		{
			ID: "def456", Date: "2025-03-01", Type: model.ChargePublic,
			Price: 0.56, Kwh: 20, Note: "",
			Attachments: []model.Attachment{},
			CreatedAt:   "2025-03-01T09:30:00Z",
		},
	}
	st.Costs = []model.Cost{
		{
			ID: "ghi789", Date: "2025-01-05", Category: model.CatInsurance,
			Amount: 420, Miles: "12000", Note: "annual", Vehicle: model.VehicleEV,
			Spread: model.SpreadYearly, Attachments: []model.Attachment{},
			CreatedAt: "2025-01-05T10:00:00Z",
		},
	}

	data, err := Serialize(st)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := DecodeAt(data, testNow)
	if err != nil {
		t.Fatalf("DecodeAt: %v", err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, st)
	}
}

func TestDecodeRejectsOnlyUnparseableJSON(t *testing.T) {
	if _, err := DecodeAt([]byte("{not json"), testNow); err == nil {
		t.Error("unparseable JSON must error")
	}
	st, err := DecodeAt([]byte(`"just a string"`), testNow)
	if err != nil {
		t.Fatalf("decodable wrong-shape payload must not error: %v", err)
	}
	if !reflect.DeepEqual(st, DefaultState()) {
		t.Error("wrong-shape payload must sanitize to defaults")
	}
}

func TestSerializeFieldNames(t *testing.T) {
	data, err := Serialize(DefaultState())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"schema", "prices", "investment", "compare", "entries", "costs"} {
		if _, ok := m[key]; !ok {
			t.Errorf("serialized state missing %q", key)
		}
	}
	cmp := m["compare"].(map[string]any)
	for _, key := range []string{"ice_mpg", "ev_mpkwh", "fuel_price", "ice_maint_per_mile"} {
		if _, ok := cmp[key]; !ok {
			t.Errorf("compare missing %q", key)
		}
	}
}
