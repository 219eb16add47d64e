package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/filter"
	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/tui/components"
	"github.com/insterion/ev-log/internal/tui/theme"
)

func (a App) renderSummaryTab(cw int) string {
	now := a.sess.Now()

	entries := filter.Entries(a.sess.State.Entries, a.period, filter.Query{}, now)
	costs := filter.Costs(a.sess.State.Costs, a.period, now)
	totals := calc.Totals(a.sess.State.Prices, entries)
	costTotals := calc.CostsTotalsFor(costs, a.period, "")

	var b strings.Builder

	// Headline metrics
	sessions := 0
	for _, bt := range totals.ByType {
		sessions += bt.Count
	}
	avg := 0.0
	if totals.Kwh > 0 {
		avg = totals.Cost / totals.Kwh
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Energy", cli.FormatKwh(totals.Kwh), fmt.Sprintf("%d sessions", sessions)},
		{"Charging spend", cli.FormatMoney(totals.Cost), "avg " + cli.FormatRate(avg)},
		{"Saved vs public", cli.FormatSigned(totals.Saved), "base " + cli.FormatRate(totals.BasePublicPrice)},
		{"Other costs", cli.FormatMoney(costTotals.Total), fmt.Sprintf("%d records", len(costs))},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// By charge type, with proportional bars
	half := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("By charge type", a.typeBreakdown(totals, components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Recent charges", a.recentCharges(components.CardInnerWidth(half[1])), half[1]),
	}))
	b.WriteString("\n")

	// Monthly history and payback
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Monthly", a.monthlyBreakdown(components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Charger payback", a.paybackCard(components.CardInnerWidth(half[1])), half[1]),
	}))

	return b.String()
}

func (a App) typeBreakdown(totals calc.ChargeTotals, inner int) string {
	t := theme.Active

	maxKwh := 0.0
	for _, bt := range totals.ByType {
		if bt.Kwh > maxKwh {
			maxKwh = bt.Kwh
		}
	}
	if maxKwh == 0 {
		return mutedText("No charging in this period.")
	}

	barW := inner - 34
	if barW < 6 {
		barW = 6
	}

	var b strings.Builder
	for _, ct := range model.ChargeTypeOrder {
		bt, ok := totals.ByType[ct]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%-10s %9s %9s ",
			string(ct), cli.FormatKwh(bt.Kwh), cli.FormatMoney(bt.Cost)))
		b.WriteString(components.HBar(bt.Kwh, maxKwh, barW, t.Accent))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) recentCharges(inner int) string {
	t := theme.Active

	values := model.RecentKwhValues(a.sess.State.Entries, inner)
	if len(values) == 0 {
		return mutedText("Nothing charged yet.")
	}

	last := a.sess.State.Entries[len(a.sess.State.Entries)-1]
	return components.Sparkline(values, t.AccentBright) + "\n" +
		mutedText(fmt.Sprintf("last: %s, %s at %s",
			last.Date, cli.FormatKwh(last.Kwh), cli.FormatRate(last.Price)))
}

// monthlyBreakdown lists the last six calendar months with charging in them.
func (a App) monthlyBreakdown(inner int) string {
	type monthAgg struct {
		kwh  float64
		cost float64
	}
	byMonth := make(map[string]monthAgg)
	for _, e := range a.sess.State.Entries {
		m := byMonth[e.MonthKey()]
		m.kwh += e.Kwh
		m.cost += e.Cost()
		byMonth[e.MonthKey()] = m
	}
	delete(byMonth, model.MonthKeyUnknown)

	if len(byMonth) == 0 {
		return mutedText("Nothing charged yet.")
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > 6 {
		months = months[len(months)-6:]
	}

	var b strings.Builder
	for _, m := range months {
		agg := byMonth[m]
		b.WriteString(fmt.Sprintf("%-8s %10s %10s\n", m,
			cli.FormatKwh(agg.kwh), cli.FormatMoney(agg.cost)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// paybackCard always works on lifetime figures: the investment is recovered
// across all time, not per reporting period.
func (a App) paybackCard(inner int) string {
	st := a.sess.State
	invested := st.Investment.Total()
	if invested <= 0 {
		return mutedText("No charger investment configured.")
	}

	lifetime := calc.Totals(st.Prices, st.Entries)
	remaining := calc.PaybackRemaining(st.Investment, lifetime)
	target := invested + lifetime.PublicCost
	pct := lifetime.Saved / target
	if pct < 0 {
		pct = 0
	}

	barW := inner - 26
	if barW < 10 {
		barW = 10
	}

	caption := cli.FormatMoney(remaining) + " to go"
	if remaining <= 0 {
		caption = "paid off"
	}

	return components.PaybackBar("Recovered", pct, caption, 9, barW) + "\n" +
		mutedText(fmt.Sprintf("saved %s against %s invested plus %s public charging",
			cli.FormatMoney(lifetime.Saved), cli.FormatMoney(invested),
			cli.FormatMoney(lifetime.PublicCost)))
}
