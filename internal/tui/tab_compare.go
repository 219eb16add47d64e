package tui

import (
	"fmt"
	"strings"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/filter"
	"github.com/insterion/ev-log/internal/tui/components"
	"github.com/insterion/ev-log/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	now := a.sess.Now()
	st := a.sess.State

	entries := filter.Entries(st.Entries, a.period, filter.Query{}, now)
	costs := filter.Costs(st.Costs, a.period, now)
	totals := calc.Totals(st.Prices, entries)

	title := fmt.Sprintf("EV vs petrol │ %s", a.period.Label())

	if totals.Kwh == 0 {
		return components.ContentCard(title,
			mutedText("No charging in this period; nothing to compare."), cw)
	}

	cmp := calc.CompareRealistic(st.Compare, totals, costs, a.period)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	evStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	iceStyle := lipgloss.NewStyle().Foreground(t.Orange).Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-24s", label)) + valueStyle.Render(value)
	}

	maintLabel := "Maintenance (estimated)"
	if cmp.HasICECosts {
		maintLabel = "Recorded ICE costs"
	}

	evLines := []string{
		row("Charging", cli.FormatMoney(totals.Cost)),
		row("Other EV costs", cli.FormatMoney(cmp.EVCosts)),
		"",
		evStyle.Render("Total  " + cli.FormatMoney(cmp.EVTotal)),
	}
	iceLines := []string{
		row("Petrol", fmt.Sprintf("%s (%s L)", cli.FormatMoney(cmp.FuelCost), cli.FormatNumber(cmp.Litres))),
		row(maintLabel, cli.FormatMoney(cmp.ICEMaint)),
		"",
		iceStyle.Render("Total  " + cli.FormatMoney(cmp.ICETotal)),
	}

	half := components.LayoutRow(cw, 2)
	sideBySide := components.CardRow([]string{
		components.ContentCard("Driving the EV", strings.Join(evLines, "\n"), half[0]),
		components.ContentCard("Same miles on petrol", strings.Join(iceLines, "\n"), half[1]),
	})

	verdict := evStyle.Render(fmt.Sprintf("EV ahead by %s", cli.FormatMoney(cmp.Diff)))
	if cmp.Diff < 0 {
		verdict = iceStyle.Render(fmt.Sprintf("ICE ahead by %s", cli.FormatMoney(-cmp.Diff)))
	}

	verdictLines := []string{
		row("Miles modelled", cli.FormatNumber(cmp.Miles)+" mi"),
	}
	if cmp.Miles > 0 {
		verdictLines = append(verdictLines, row("Per mile",
			fmt.Sprintf("%s vs %s", cli.FormatPerMile(cmp.EVPerMile), cli.FormatPerMile(cmp.ICEPerMile))))
	}
	verdictLines = append(verdictLines, "", verdict, "",
		mutedText(fmt.Sprintf("assumes %.0f mpg, %.1f mi/kWh, %s/L fuel, %s/mi maintenance",
			st.Compare.ICEMpg, st.Compare.EVMilesPerKwh,
			cli.FormatMoney(st.Compare.FuelPrice), cli.FormatMoney(st.Compare.ICEMaintPerMile))))

	return components.ContentCard(title, strings.Join(verdictLines, "\n"), cw) +
		"\n" + sideBySide
}
