package cli

import (
	"fmt"
	"strings"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/model"
)

// EntriesCSV projects charging entries to a CSV table. The savings
// column compares each non-public charge against the base public rate;
// public charges show 0.
func EntriesCSV(prices model.Prices, entries []model.ChargingEntry) string {
	var b strings.Builder
	writeCSVRow(&b, []string{
		"Date", "Type", "kWh", "Price_per_kWh", "Cost",
		"Saved_vs_BasePublic", "Note", "Attachments", "Attachment_Links",
	})
	for _, e := range entries {
		writeCSVRow(&b, []string{
			e.Date,
			string(e.Type),
			formatCSVNum(e.Kwh),
			formatCSVNum(e.Price),
			formatCSVMoney(e.Cost()),
			formatCSVMoney(calc.EntrySaved(prices.Public, e)),
			e.Note,
			fmt.Sprintf("%d", len(e.Attachments)),
			attachmentSummary(e.Attachments),
		})
	}
	return b.String()
}

// CostsCSV projects ancillary costs to a CSV table.
func CostsCSV(costs []model.Cost) string {
	var b strings.Builder
	writeCSVRow(&b, []string{
		"Date", "Vehicle", "Category", "Amount", "Spread", "Miles",
		"Note", "Attachments", "Attachment_Links",
	})
	for _, c := range costs {
		writeCSVRow(&b, []string{
			c.Date,
			string(c.Vehicle),
			string(c.Category),
			formatCSVMoney(c.Amount),
			string(c.Spread),
			c.Miles,
			c.Note,
			fmt.Sprintf("%d", len(c.Attachments)),
			attachmentSummary(c.Attachments),
		})
	}
	return b.String()
}

func attachmentSummary(atts []model.Attachment) string {
	if len(atts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(atts))
	for _, a := range atts {
		parts = append(parts, a.Name+": "+a.URL)
	}
	return strings.Join(parts, "; ")
}

func formatCSVNum(v float64) string {
	return trimZeros(fmt.Sprintf("%.3f", v))
}

func formatCSVMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvEscape(f))
	}
	b.WriteString("\r\n")
}

// csvEscape quotes a field when it contains a comma, quote, or newline,
// doubling embedded quotes.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
