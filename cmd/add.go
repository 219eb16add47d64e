package cmd

import (
	"fmt"
	"strings"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagAddDate   string
	flagAddType   string
	flagAddKwh    float64
	flagAddPrice  float64
	flagAddNote   string
	flagAddAttach []string
	flagAddSame   bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a charging entry",
	Long: `Add a charging entry. The price defaults to the configured rate for
the charge type. --same-as-last copies type, kWh, price, and note from
the most recent entry, dated today.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVarP(&flagAddType, "type", "t", "home", "Charge type: public, public_exp, home, home_exp, custom")
	addCmd.Flags().Float64VarP(&flagAddKwh, "kwh", "k", 0, "Energy added in kWh (required)")
	addCmd.Flags().Float64Var(&flagAddPrice, "price", 0, "Unit price per kWh (default: configured rate for the type)")
	addCmd.Flags().StringVar(&flagAddNote, "note", "", "Free-text note")
	addCmd.Flags().StringArrayVar(&flagAddAttach, "attach", nil, "Attachment as name=url (repeatable)")
	addCmd.Flags().BoolVar(&flagAddSame, "same-as-last", false, "Copy the most recent entry, dated today")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	if flagAddSame {
		last, ok := model.LatestEntry(s.State.Entries)
		if !ok {
			return fmt.Errorf("no previous entry to copy")
		}
		added, err := s.DuplicateEntry(last.ID)
		if err != nil {
			return err
		}
		printAdded(s.State.Prices, added)
		return nil
	}

	chargeType, err := parseChargeType(flagAddType)
	if err != nil {
		return err
	}

	price := flagAddPrice
	if !cmd.Flags().Changed("price") {
		price = s.State.Prices.For(chargeType)
	}

	attachments, err := parseAttachments(flagAddAttach)
	if err != nil {
		return err
	}

	added, err := s.AddEntry(model.ChargingEntry{
		Date:        flagAddDate,
		Type:        chargeType,
		Kwh:         flagAddKwh,
		Price:       price,
		Note:        flagAddNote,
		Attachments: attachments,
	})
	if err != nil {
		return err
	}
	printAdded(s.State.Prices, added)
	return nil
}

func printAdded(prices model.Prices, e model.ChargingEntry) {
	fmt.Printf("  Added %s  %s  %s at %s  =  %s",
		e.Date, e.Type, cli.FormatKwh(e.Kwh), cli.FormatRate(e.Price), cli.FormatMoney(e.Cost()))
	if saved := calc.EntrySaved(prices.Public, e); saved != 0 {
		fmt.Printf("  (%s vs public)", cli.FormatSigned(saved))
	}
	fmt.Println()
}

// parseChargeType validates the CLI token strictly; typos should error
// rather than silently becoming "custom".
func parseChargeType(raw string) (model.ChargeType, error) {
	for _, t := range model.ChargeTypeOrder {
		if raw == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown charge type %q (want public, public_exp, home, home_exp, or custom)", raw)
}

// parseAttachments accepts "name=url" or a bare url.
func parseAttachments(raw []string) ([]model.Attachment, error) {
	out := make([]model.Attachment, 0, len(raw))
	for _, item := range raw {
		name, url, found := strings.Cut(item, "=")
		if !found {
			url, name = item, ""
		}
		if strings.TrimSpace(url) == "" && strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("empty attachment %q", item)
		}
		out = append(out, model.Attachment{Name: name, URL: url})
	}
	return out, nil
}
