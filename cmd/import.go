package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/insterion/ev-log/internal/schema"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore data from a JSON backup",
	Long: `Replace all stored data with the given JSON backup (a previous export),
read from the file argument or stdin. The payload is sanitized on the
way in: malformed fields are repaired and invalid records dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading backup: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	st, err := schema.Decode(data)
	if err != nil {
		return err
	}

	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	if err := s.ReplaceState(st); err != nil {
		return err
	}

	fmt.Printf("  Imported %d entries and %d costs\n", len(st.Entries), len(st.Costs))
	return nil
}
