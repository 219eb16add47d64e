package model

import (
	"reflect"
	"testing"
)

func entry(id, date, created string) ChargingEntry {
	return ChargingEntry{ID: id, Date: date, CreatedAt: created}
}

func TestSortEntriesStableOrder(t *testing.T) {
	entries := []ChargingEntry{
		entry("bbbbbb", "2025-02-01", "2025-02-01T10:00:00Z"),
		entry("aaaaaa", "2025-01-15", "2025-01-15T08:00:00Z"),
		entry("cccccc", "2025-02-01", "2025-02-01T09:00:00Z"),
		entry("aaaaa2", "2025-02-01", "2025-02-01T09:00:00Z"),
	}
	SortEntries(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.ID
	}
	// date, then createdAt, then id
	want := []string{"aaaaaa", "aaaaa2", "cccccc", "bbbbbb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortEntriesIdempotent(t *testing.T) {
	entries := []ChargingEntry{
		entry("b00001", "2025-02-01", "2025-02-01T10:00:00Z"),
		entry("a00001", "2025-01-01", "2025-01-01T10:00:00Z"),
	}
	SortEntries(entries)
	first := make([]ChargingEntry, len(entries))
	copy(first, entries)
	SortEntries(entries)
	if !reflect.DeepEqual(entries, first) {
		t.Error("second sort changed the order")
	}
}

func TestSortCostsOrder(t *testing.T) {
	costs := []Cost{
		{ID: "b00001", Date: "2025-03-01", CreatedAt: "2025-03-01T10:00:00Z"},
		{ID: "a00001", Date: "2025-01-01", CreatedAt: "2025-01-01T10:00:00Z"},
	}
	SortCosts(costs)
	if costs[0].ID != "a00001" {
		t.Errorf("first cost = %q, want a00001", costs[0].ID)
	}
}

func TestLatestEntryPrefersCreatedAt(t *testing.T) {
	entries := []ChargingEntry{
		entry("a00001", "2025-03-01", "2025-03-01T08:00:00Z"),
		entry("b00001", "2025-02-01", "2025-03-02T09:00:00Z"), // older date, newer creation
	}
	latest, ok := LatestEntry(entries)
	if !ok || latest.ID != "b00001" {
		t.Errorf("latest = %+v ok=%v, want b00001", latest, ok)
	}

	if _, ok := LatestEntry(nil); ok {
		t.Error("empty slice must report false")
	}
}

func TestLatestEntryFallsBackToDate(t *testing.T) {
	entries := []ChargingEntry{
		entry("a00001", "2025-01-01", ""),
		entry("b00001", "2025-04-01", ""),
	}
	latest, _ := LatestEntry(entries)
	if latest.ID != "b00001" {
		t.Errorf("latest = %q, want b00001", latest.ID)
	}
}

func TestRecentKwhValues(t *testing.T) {
	entries := []ChargingEntry{
		{ID: "a00001", Date: "2025-01-01", CreatedAt: "2025-01-01T10:00:00Z", Kwh: 20},
		{ID: "b00001", Date: "2025-01-02", CreatedAt: "2025-01-02T10:00:00Z", Kwh: 35},
		{ID: "c00001", Date: "2025-01-03", CreatedAt: "2025-01-03T10:00:00Z", Kwh: 20}, // duplicate value
		{ID: "d00001", Date: "2025-01-04", CreatedAt: "2025-01-04T10:00:00Z", Kwh: 0},  // skipped
	}
	got := RecentKwhValues(entries, 3)
	want := []float64{20, 35}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPricesFor(t *testing.T) {
	p := Prices{Public: 0.56, PublicExp: 0.76, Home: 0.09, HomeExp: 0.30}
	tests := []struct {
		t    ChargeType
		want float64
	}{
		{ChargePublic, 0.56},
		{ChargePublicExp, 0.76},
		{ChargeHome, 0.09},
		{ChargeHomeExp, 0.30},
		{ChargeCustom, 0},
	}
	for _, tt := range tests {
		if got := p.For(tt.t); got != tt.want {
			t.Errorf("For(%q) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestMonthKeyFromISO(t *testing.T) {
	if got := MonthKeyFromISO("2025-03-15"); got != "2025-03" {
		t.Errorf("got %q", got)
	}
	if got := MonthKeyFromISO("junk"); got != MonthKeyUnknown {
		t.Errorf("short input: got %q", got)
	}
}

func TestNormalizeChargeType(t *testing.T) {
	tests := []struct {
		in   string
		want ChargeType
	}{
		{"public", ChargePublic},
		{"home_cheap", ChargeHome},
		{"home_exp", ChargeHomeExp},
		{"hypercharge", ChargeCustom},
		{"", ChargeCustom},
	}
	for _, tt := range tests {
		if got := NormalizeChargeType(tt.in); got != tt.want {
			t.Errorf("NormalizeChargeType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPublic(t *testing.T) {
	if !ChargePublic.IsPublic() || !ChargePublicExp.IsPublic() {
		t.Error("public types must report public")
	}
	if ChargeHome.IsPublic() || ChargeCustom.IsPublic() {
		t.Error("non-public types must not report public")
	}
}
