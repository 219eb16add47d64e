package cmd

import (
	"fmt"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/filter"
	"github.com/insterion/ev-log/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagCostDate    string
	flagCostCat     string
	flagCostAmount  float64
	flagCostMiles   string
	flagCostNote    string
	flagCostVehicle string
	flagCostSpread  string
	flagCostAttach  []string
	flagCostCSV     bool
	flagCostIDs     bool
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Manage ancillary vehicle costs",
}

var costAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a cost record",
	RunE:  runCostAdd,
}

var costListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cost records",
	RunE:  runCostList,
}

var costDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a cost record",
	Args:  cobra.ExactArgs(1),
	RunE:  runCostDelete,
}

func init() {
	costAddCmd.Flags().StringVar(&flagCostDate, "date", "", "Cost date (YYYY-MM-DD, default today)")
	costAddCmd.Flags().StringVarP(&flagCostCat, "category", "c", "other", "Category: tyres, brakes, service, mot, insurance, tax, repairs, accessories, other")
	costAddCmd.Flags().Float64VarP(&flagCostAmount, "amount", "a", 0, "Amount spent (required)")
	costAddCmd.Flags().StringVar(&flagCostMiles, "miles", "", "Odometer reading")
	costAddCmd.Flags().StringVar(&flagCostNote, "note", "", "Free-text note")
	costAddCmd.Flags().StringVar(&flagCostVehicle, "vehicle", "ev", "Vehicle: ev or ice")
	costAddCmd.Flags().StringVar(&flagCostSpread, "spread", "oneoff", "Amortization: oneoff, monthly, or yearly")
	costAddCmd.Flags().StringArrayVar(&flagCostAttach, "attach", nil, "Attachment as name=url (repeatable)")

	costListCmd.Flags().BoolVar(&flagCostCSV, "csv", false, "Emit CSV instead of a table")
	costListCmd.Flags().BoolVar(&flagCostIDs, "ids", false, "Include record ids (for delete)")
	costListCmd.Flags().StringVar(&flagCostVehicle, "vehicle", "", "Restrict to one vehicle: ev or ice")

	costCmd.AddCommand(costAddCmd, costListCmd, costDeleteCmd)
	rootCmd.AddCommand(costCmd)
}

func runCostAdd(_ *cobra.Command, _ []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	category, err := parseCategory(flagCostCat)
	if err != nil {
		return err
	}
	vehicle, err := parseVehicle(flagCostVehicle)
	if err != nil {
		return err
	}
	spread, err := parseSpread(flagCostSpread)
	if err != nil {
		return err
	}
	attachments, err := parseAttachments(flagCostAttach)
	if err != nil {
		return err
	}

	added, err := s.AddCost(model.Cost{
		Date:        flagCostDate,
		Category:    category,
		Amount:      flagCostAmount,
		Miles:       flagCostMiles,
		Note:        flagCostNote,
		Vehicle:     vehicle,
		Spread:      spread,
		Attachments: attachments,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Added %s  %s/%s  %s", added.Date, added.Vehicle, added.Category, cli.FormatMoney(added.Amount))
	if added.Spread != model.SpreadOneOff {
		fmt.Printf("  (%s)", added.Spread)
	}
	fmt.Println()
	return nil
}

func runCostList(_ *cobra.Command, _ []string) error {
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

	var vehicle model.Vehicle
	if flagCostVehicle != "" {
		vehicle, err = parseVehicle(flagCostVehicle)
		if err != nil {
			return err
		}
	}

	costs := filter.Costs(s.State.Costs, period, s.Now())
	if vehicle != "" {
		kept := make([]model.Cost, 0, len(costs))
		for _, c := range costs {
			if c.Vehicle == vehicle {
				kept = append(kept, c)
			}
		}
		costs = kept
	}

	if flagCostCSV {
		fmt.Print(cli.CostsCSV(costs))
		return nil
	}

	if len(costs) == 0 {
		fmt.Printf("\n  No costs (%s).\n", period.Label())
		return nil
	}

	headers := []string{"Date", "Vehicle", "Category", "Amount", "Counted", "Miles", "Note"}
	if flagCostIDs {
		headers = append([]string{"ID"}, headers...)
	}

	rows := make([][]string, 0, len(costs)+2)
	for _, c := range costs {
		counted := c.Amount * calc.SpreadFactor(c.Spread, period)
		countedCell := cli.FormatMoney(counted)
		if c.Spread == model.SpreadYearly && period != calc.PeriodAll {
			countedCell += " (1/12)"
		}
		row := []string{
			c.Date,
			string(c.Vehicle),
			string(c.Category),
			cli.FormatMoney(c.Amount),
			countedCell,
			c.Miles,
			c.Note,
		}
		if flagCostIDs {
			row = append([]string{shortID(c.ID)}, row...)
		}
		rows = append(rows, row)
	}

	totals := calc.CostsTotalsFor(costs, period, vehicle)
	totalRow := []string{period.Label(), "", fmt.Sprintf("%d records", len(costs)), "", cli.FormatMoney(totals.Total), "", ""}
	if flagCostIDs {
		totalRow = append([]string{""}, totalRow...)
	}
	rows = append(rows, []string{"---"}, totalRow)

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))
	return nil
}

func runCostDelete(_ *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	id, err := resolveCostID(s.State.Costs, args[0])
	if err != nil {
		return err
	}
	if err := s.DeleteCost(id); err != nil {
		return err
	}
	fmt.Printf("  Deleted cost %s\n", shortID(id))
	return nil
}

func parseCategory(raw string) (model.Category, error) {
	for _, c := range model.CategoryOrder {
		if raw == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

func parseVehicle(raw string) (model.Vehicle, error) {
	switch raw {
	case "ev":
		return model.VehicleEV, nil
	case "ice":
		return model.VehicleICE, nil
	default:
		return "", fmt.Errorf("unknown vehicle %q (want ev or ice)", raw)
	}
}

func parseSpread(raw string) (model.Spread, error) {
	switch raw {
	case "oneoff":
		return model.SpreadOneOff, nil
	case "monthly":
		return model.SpreadMonthly, nil
	case "yearly":
		return model.SpreadYearly, nil
	default:
		return "", fmt.Errorf("unknown spread %q (want oneoff, monthly, or yearly)", raw)
	}
}
