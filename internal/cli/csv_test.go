package cli

import (
	"strings"
	"testing"

	"github.com/insterion/ev-log/internal/model"
)

func TestCSVEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"has,comma", `"has,comma"`},
		{`has "quote"`, `"has ""quote"""`},
		{"has\nnewline", "\"has\nnewline\""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := csvEscape(tt.in); got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntriesCSVSavedColumn(t *testing.T) {
	prices := model.Prices{Public: 0.56, PublicExp: 0.76, Home: 0.09, HomeExp: 0.30}
	entries := []model.ChargingEntry{
		{ID: "aaaaaa", Date: "2025-03-01", Type: model.ChargeHome, Kwh: 10, Price: 0.09},
		{ID: "bbbbbb", Date: "2025-03-02", Type: model.ChargePublic, Kwh: 10, Price: 0.56},
	}

	out := EntriesCSV(prices, entries)
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}

	home := strings.Split(lines[1], ",")
	if home[5] != "4.70" {
		t.Errorf("home saved = %q, want 4.70", home[5])
	}
	public := strings.Split(lines[2], ",")
	if public[5] != "0.00" {
		t.Errorf("public saved = %q, want 0.00", public[5])
	}
}

func TestEntriesCSVQuotesNoteWithComma(t *testing.T) {
	entries := []model.ChargingEntry{
		{ID: "aaaaaa", Date: "2025-03-01", Type: model.ChargeHome, Kwh: 5, Price: 0.09, Note: "overnight, off-peak"},
	}
	out := EntriesCSV(model.Prices{Public: 0.56}, entries)
	if !strings.Contains(out, `"overnight, off-peak"`) {
		t.Errorf("note not quoted:\n%s", out)
	}
}

func TestCostsCSVAttachmentSummary(t *testing.T) {
	costs := []model.Cost{
		{
			ID: "cccccc", Date: "2025-01-15", Vehicle: model.VehicleICE,
			Category: model.CatInsurance, Amount: 320, Spread: model.SpreadYearly,
			Attachments: []model.Attachment{
				{Name: "policy", URL: "https://example.com/p.pdf"},
				{Name: "receipt", URL: "https://example.com/r.pdf"},
			},
		},
	}
	out := CostsCSV(costs)
	if !strings.Contains(out, "policy: https://example.com/p.pdf; receipt: https://example.com/r.pdf") {
		t.Errorf("attachment summary missing:\n%s", out)
	}
	if !strings.Contains(out, ",2,") {
		t.Errorf("attachment count missing:\n%s", out)
	}
}
