package cmd

import (
	"fmt"
	"sort"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/filter"
	"github.com/insterion/ev-log/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Charging totals, breakdowns, and charger payback",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	period, err := activePeriod(kv)
	if err != nil {
		return err
	}

	if len(s.State.Entries) == 0 {
		fmt.Println("\n  No charging entries yet.")
		fmt.Println("  Add one with `ev-log add --kwh 30 --type home`.")
		return nil
	}

	now := s.Now()
	entries := filter.Entries(s.State.Entries, period, filter.Query{}, now)
	costs := filter.Costs(s.State.Costs, period, now)
	totals := calc.Totals(s.State.Prices, entries)
	costTotals := calc.CostsTotalsFor(costs, period, "")

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EV CHARGING  %s", period.Label())))
	fmt.Println()

	rows := [][]string{
		{"Sessions", fmt.Sprintf("%d", len(entries))},
		{"Energy", cli.FormatKwh(totals.Kwh)},
		{"Charging spend", cli.FormatMoney(totals.Cost)},
		{"Public charging", cli.FormatMoney(totals.PublicCost)},
		{"Saved vs public", cli.FormatSigned(totals.Saved)},
	}
	if costTotals.Total > 0 {
		rows = append(rows, []string{"Other costs", cli.FormatMoney(costTotals.Total)})
	}
	if totals.Kwh > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Avg price", cli.FormatRate(totals.Cost / totals.Kwh)},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Metric", "Value"}, Rows: rows}))

	printTypeBreakdown(totals)
	printMonthly(s.State.Prices, entries)
	printPayback(s.State)

	return nil
}

func printTypeBreakdown(totals calc.ChargeTotals) {
	var maxKwh float64
	for _, t := range model.ChargeTypeOrder {
		if bt := totals.ByType[t]; bt.Kwh > maxKwh {
			maxKwh = bt.Kwh
		}
	}
	if maxKwh == 0 {
		return
	}

	rows := make([][]string, 0, len(model.ChargeTypeOrder))
	for _, t := range model.ChargeTypeOrder {
		bt, ok := totals.ByType[t]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(t),
			fmt.Sprintf("%d", bt.Count),
			cli.FormatKwh(bt.Kwh),
			cli.FormatMoney(bt.Cost),
			cli.RenderHorizontalBar(bt.Kwh, maxKwh, 20),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By charge type",
		Headers: []string{"Type", "N", "kWh", "Cost", ""},
		Rows:    rows,
	}))
}

// printMonthly shows the most recent months of the selection, newest last.
func printMonthly(prices model.Prices, entries []model.ChargingEntry) {
	byMonth := make(map[string][]model.ChargingEntry)
	for _, e := range entries {
		key := e.MonthKey()
		byMonth[key] = append(byMonth[key], e)
	}
	if len(byMonth) < 2 {
		return
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 6 {
		keys = keys[len(keys)-6:]
	}

	var maxCost float64
	for _, k := range keys {
		if t := calc.Totals(prices, byMonth[k]); t.Cost > maxCost {
			maxCost = t.Cost
		}
	}

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		t := calc.Totals(prices, byMonth[k])
		rows = append(rows, []string{
			k,
			cli.FormatKwh(t.Kwh),
			cli.FormatMoney(t.Cost),
			cli.FormatSigned(t.Saved),
			cli.RenderHorizontalBar(t.Cost, maxCost, 20),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By month",
		Headers: []string{"Month", "kWh", "Cost", "Saved", ""},
		Rows:    rows,
	}))
}

// printPayback always uses lifetime numbers regardless of the active
// period; the investment is recovered across all time.
func printPayback(st model.State) {
	if st.Investment.Total() <= 0 {
		return
	}
	lifetime := calc.Totals(st.Prices, st.Entries)
	remaining := calc.PaybackRemaining(st.Investment, lifetime)
	target := st.Investment.Total() + lifetime.PublicCost

	fmt.Println()
	if remaining <= 0 {
		fmt.Printf("  Charger paid off: %s ahead of the %s investment\n",
			cli.Saved(cli.FormatMoney(-remaining)), cli.FormatMoney(st.Investment.Total()))
	} else {
		fmt.Printf("  Charger payback: %s of %s still to recover\n",
			cli.Warn(cli.FormatMoney(remaining)), cli.FormatMoney(target))
	}
	fmt.Printf("  %s\n", cli.RenderProgressBar(lifetime.Saved, target, 30))
}
