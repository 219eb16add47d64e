package cmd

import (
	"fmt"

	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagEditDate  string
	flagEditType  string
	flagEditKwh   float64
	flagEditPrice float64
	flagEditNote  string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a charging entry",
	Long: `Edit fields of an existing entry, identified by id or unique id
prefix (see log --ids). Only the flags given change.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a charging entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var flagClearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every charging entry",
	RunE:  runClear,
}

func init() {
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date (YYYY-MM-DD)")
	editCmd.Flags().StringVarP(&flagEditType, "type", "t", "", "New charge type")
	editCmd.Flags().Float64VarP(&flagEditKwh, "kwh", "k", 0, "New energy amount")
	editCmd.Flags().Float64Var(&flagEditPrice, "price", 0, "New unit price")
	editCmd.Flags().StringVar(&flagEditNote, "note", "", "New note")

	clearCmd.Flags().BoolVar(&flagClearYes, "yes", false, "Confirm the wipe")

	rootCmd.AddCommand(editCmd, deleteCmd, clearCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	id, err := resolveEntryID(s.State.Entries, args[0])
	if err != nil {
		return err
	}
	if !s.StartEditEntry(id) {
		return fmt.Errorf("entry %s not found", shortID(id))
	}

	draft := s.EntryDraft()
	if cmd.Flags().Changed("date") {
		draft.Date = flagEditDate
	}
	if cmd.Flags().Changed("type") {
		t, err := parseChargeType(flagEditType)
		if err != nil {
			s.CancelEntryEdit()
			return err
		}
		draft.Type = t
	}
	if cmd.Flags().Changed("kwh") {
		draft.Kwh = flagEditKwh
	}
	if cmd.Flags().Changed("price") {
		draft.Price = flagEditPrice
	}
	if cmd.Flags().Changed("note") {
		draft.Note = flagEditNote
	}

	if err := s.CommitEntryEdit(); err != nil {
		return err
	}

	for _, e := range s.State.Entries {
		if e.ID == id {
			fmt.Printf("  Updated %s  %s  %s at %s  =  %s\n",
				e.Date, e.Type, cli.FormatKwh(e.Kwh), cli.FormatRate(e.Price), cli.FormatMoney(e.Cost()))
			return nil
		}
	}
	// A negative kwh or price edit drops the record instead of storing it.
	fmt.Printf("  Entry %s removed (edit broke its invariants)\n", shortID(id))
	return nil
}

func runDelete(_ *cobra.Command, args []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	id, err := resolveEntryID(s.State.Entries, args[0])
	if err != nil {
		return err
	}
	var removed model.ChargingEntry
	for _, e := range s.State.Entries {
		if e.ID == id {
			removed = e
			break
		}
	}
	if err := s.DeleteEntry(id); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s  %s  %s\n", removed.Date, removed.Type, cli.FormatKwh(removed.Kwh))
	return nil
}

func runClear(_ *cobra.Command, _ []string) error {
	if !flagClearYes {
		return fmt.Errorf("refusing to delete all entries without --yes")
	}

	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	n := len(s.State.Entries)
	if err := s.ClearEntries(); err != nil {
		return err
	}
	fmt.Printf("  Cleared %d entries\n", n)
	return nil
}
