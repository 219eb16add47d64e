package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/schema"
	"github.com/insterion/ev-log/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data as a JSON backup or CSV tables",
	Long: `Export the full state as JSON (the import format), or the entries or
costs as CSV. A JSON export records the last-backup timestamp.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "Output format: json, csv, or costs-csv")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	var payload []byte
	switch flagExportFormat {
	case "json":
		payload, err = schema.Serialize(s.State)
		if err != nil {
			return err
		}
		payload = append(payload, '\n')
	case "csv":
		payload = []byte(cli.EntriesCSV(s.State.Prices, s.State.Entries))
	case "costs-csv":
		payload = []byte(cli.CostsCSV(s.State.Costs))
	default:
		return fmt.Errorf("unknown format %q (want json, csv, or costs-csv)", flagExportFormat)
	}

	if err := writeOut(payload); err != nil {
		return err
	}

	if flagExportFormat == "json" {
		if err := store.SetLastBackup(kv, s.Now()); err != nil && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  warning: recording backup time: %v\n", err)
		}
	}

	if flagExportOut != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagExportOut)
	}
	return nil
}

func writeOut(payload []byte) error {
	var w io.Writer = os.Stdout
	if flagExportOut != "" {
		f, err := os.OpenFile(flagExportOut, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(payload)
	return err
}
