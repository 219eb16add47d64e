package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/model"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func testEntries() []model.ChargingEntry {
	return []model.ChargingEntry{
		{ID: "a00001", Date: "2025-02-20", Type: model.ChargeHome, Note: "overnight top-up"},
		{ID: "b00001", Date: "2025-03-01", Type: model.ChargePublic, Note: "motorway stop"},
		{ID: "c00001", Date: "2025-03-10", Type: model.ChargeHome, Note: "",
			Attachments: []model.Attachment{{Name: "Supercharger invoice", URL: "https://x/inv.pdf"}}},
		{ID: "d00001", Date: "2025-03-20", Type: model.ChargeHomeExp, Note: "peak rate"},
	}
}

func ids(entries []model.ChargingEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestEntriesMonthWindow(t *testing.T) {
	got := Entries(testEntries(), calc.PeriodThisMonth, Query{}, fixedNow)
	want := []string{"b00001", "c00001", "d00001"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("this month = %v, want %v", ids(got), want)
	}

	got = Entries(testEntries(), calc.PeriodLastMonth, Query{}, fixedNow)
	if !reflect.DeepEqual(ids(got), []string{"a00001"}) {
		t.Errorf("last month = %v", ids(got))
	}
}

func TestEntriesSearchIsCaseInsensitive(t *testing.T) {
	got := Entries(testEntries(), calc.PeriodAll, Query{Search: "MOTORWAY"}, fixedNow)
	if !reflect.DeepEqual(ids(got), []string{"b00001"}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestEntriesSearchCoversAttachments(t *testing.T) {
	got := Entries(testEntries(), calc.PeriodAll, Query{Search: "supercharger"}, fixedNow)
	if !reflect.DeepEqual(ids(got), []string{"c00001"}) {
		t.Errorf("attachment name search: got %v", ids(got))
	}

	got = Entries(testEntries(), calc.PeriodAll, Query{Search: "inv.pdf"}, fixedNow)
	if !reflect.DeepEqual(ids(got), []string{"c00001"}) {
		t.Errorf("attachment url search: got %v", ids(got))
	}
}

func TestEntriesComposesMonthAndQuery(t *testing.T) {
	got := Entries(testEntries(), calc.PeriodThisMonth, Query{Type: model.ChargeHome}, fixedNow)
	if !reflect.DeepEqual(ids(got), []string{"c00001"}) {
		t.Errorf("month+type = %v, want [c00001]", ids(got))
	}
}

func TestEntriesDateBoundsInclusive(t *testing.T) {
	got := Entries(testEntries(), calc.PeriodAll, Query{From: "2025-03-01", To: "2025-03-10"}, fixedNow)
	want := []string{"b00001", "c00001"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("bounds = %v, want %v", ids(got), want)
	}
}

func TestEntriesPreservesOrderAndInput(t *testing.T) {
	in := testEntries()
	got := Entries(in, calc.PeriodAll, Query{}, fixedNow)
	if !reflect.DeepEqual(ids(got), ids(in)) {
		t.Error("no-op filter must preserve order")
	}
	if len(in) != 4 {
		t.Error("input mutated")
	}
}

func TestCostsMonthWindow(t *testing.T) {
	costs := []model.Cost{
		{ID: "a00001", Date: "2025-02-10"},
		{ID: "b00001", Date: "2025-03-05"},
		{ID: "c00001", Date: ""},
	}
	got := Costs(costs, calc.PeriodThisMonth, fixedNow)
	if len(got) != 1 || got[0].ID != "b00001" {
		t.Errorf("got %+v", got)
	}

	all := Costs(costs, calc.PeriodAll, fixedNow)
	if len(all) != 3 {
		t.Errorf("all period must pass everything, got %d", len(all))
	}
}

func TestQueryIsZero(t *testing.T) {
	if !(Query{}).IsZero() {
		t.Error("empty query must be zero")
	}
	if (Query{Search: "x"}).IsZero() {
		t.Error("non-empty query must not be zero")
	}
}
