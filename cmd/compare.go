package cmd

import (
	"fmt"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/filter"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "EV running costs versus the reference petrol car",
	Long: `Model driving the period's charged energy in the EV against covering
the same miles in a petrol car, using the configured mpg, fuel price,
and maintenance assumptions. Recorded ICE costs replace the per-mile
maintenance estimate when present.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
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

	now := s.Now()
	entries := filter.Entries(s.State.Entries, period, filter.Query{}, now)
	costs := filter.Costs(s.State.Costs, period, now)
	totals := calc.Totals(s.State.Prices, entries)

	if totals.Kwh == 0 {
		fmt.Printf("\n  No charging in %s; nothing to compare.\n", period.Label())
		return nil
	}

	cmp := calc.CompareRealistic(s.State.Compare, totals, costs, period)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EV vs ICE  %s", period.Label())))
	fmt.Println()

	maintLabel := "ICE maintenance (est)"
	if cmp.HasICECosts {
		maintLabel = "ICE costs (recorded)"
	}

	rows := [][]string{
		{"Miles driven", fmt.Sprintf("%s mi", cli.FormatNumber(cmp.Miles))},
		{"---"},
		{"EV charging", cli.FormatMoney(totals.Cost)},
		{"EV other costs", cli.FormatMoney(cmp.EVCosts)},
		{"EV total", cli.FormatMoney(cmp.EVTotal)},
		{"---"},
		{"Petrol", fmt.Sprintf("%s (%s L)", cli.FormatMoney(cmp.FuelCost), cli.FormatNumber(cmp.Litres))},
		{maintLabel, cli.FormatMoney(cmp.ICEMaint)},
		{"ICE total", cli.FormatMoney(cmp.ICETotal)},
		{"---"},
	}
	if cmp.Miles > 0 {
		rows = append(rows, []string{"Per mile", fmt.Sprintf("%s vs %s",
			cli.FormatPerMile(cmp.EVPerMile), cli.FormatPerMile(cmp.ICEPerMile))})
	}

	verdict := fmt.Sprintf("EV ahead by %s", cli.FormatMoney(cmp.Diff))
	if cmp.Diff < 0 {
		verdict = fmt.Sprintf("ICE ahead by %s", cli.FormatMoney(-cmp.Diff))
	}
	rows = append(rows, []string{"Difference", verdict})

	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Metric", "Value"}, Rows: rows}))

	fmt.Printf("\n  Assumptions: %.0f mpg, %.1f mi/kWh, %s/L fuel, %s/mi maintenance\n",
		s.State.Compare.ICEMpg, s.State.Compare.EVMilesPerKwh,
		cli.FormatMoney(s.State.Compare.FuelPrice), cli.FormatMoney(s.State.Compare.ICEMaintPerMile))
	return nil
}
