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
	flagLogSearch string
	flagLogType   string
	flagLogFrom   string
	flagLogTo     string
	flagLogCSV    bool
	flagLogIDs    bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List charging entries",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().StringVarP(&flagLogSearch, "search", "s", "", "Match notes and attachments (case-insensitive)")
	logCmd.Flags().StringVarP(&flagLogType, "type", "t", "", "Restrict to one charge type")
	logCmd.Flags().StringVar(&flagLogFrom, "from", "", "Earliest date, inclusive (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&flagLogTo, "to", "", "Latest date, inclusive (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&flagLogCSV, "csv", false, "Emit CSV instead of a table")
	logCmd.Flags().BoolVar(&flagLogIDs, "ids", false, "Include record ids (for edit/delete)")
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, _ []string) error {
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

	q := filter.Query{Search: flagLogSearch, From: flagLogFrom, To: flagLogTo}
	if flagLogType != "" {
		t, err := parseChargeType(flagLogType)
		if err != nil {
			return err
		}
		q.Type = t
	}

	entries := filter.Entries(s.State.Entries, period, q, s.Now())

	if flagLogCSV {
		fmt.Print(cli.EntriesCSV(s.State.Prices, entries))
		return nil
	}

	if len(entries) == 0 {
		fmt.Printf("\n  No entries (%s).\n", period.Label())
		return nil
	}

	headers := []string{"Date", "Type", "kWh", "Price", "Cost", "Saved", "Note"}
	if flagLogIDs {
		headers = append([]string{"ID"}, headers...)
	}

	base := s.State.Prices.Public
	rows := make([][]string, 0, len(entries)+2)
	for _, e := range entries {
		row := []string{
			e.Date,
			string(e.Type),
			cli.FormatNumber(e.Kwh),
			cli.FormatRate(e.Price),
			cli.FormatMoney(e.Cost()),
			savedCell(calc.EntrySaved(base, e)),
			noteCell(e),
		}
		if flagLogIDs {
			row = append([]string{shortID(e.ID)}, row...)
		}
		rows = append(rows, row)
	}

	totals := calc.Totals(s.State.Prices, entries)
	totalRow := []string{
		period.Label(),
		fmt.Sprintf("%d", len(entries)),
		cli.FormatNumber(totals.Kwh),
		"",
		cli.FormatMoney(totals.Cost),
		savedCell(totals.Saved),
		"",
	}
	if flagLogIDs {
		totalRow = append([]string{""}, totalRow...)
	}
	rows = append(rows, []string{"---"}, totalRow)

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))
	return nil
}

func savedCell(v float64) string {
	if v == 0 {
		return ""
	}
	return cli.FormatSigned(v)
}

func noteCell(e model.ChargingEntry) string {
	note := e.Note
	if n := len(e.Attachments); n > 0 {
		if note != "" {
			note += " "
		}
		note += fmt.Sprintf("[%d att]", n)
	}
	return note
}

// shortID shows enough of an id to be pasted back uniquely.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
