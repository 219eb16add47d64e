// Package cmd implements the ev-log CLI commands.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/config"
	"github.com/insterion/ev-log/internal/model"
	"github.com/insterion/ev-log/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration and settings",
	RunE:  runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a stored setting",
	Long: `Change one of the stored settings. Keys:

  price.public  price.public_exp  price.home  price.home_exp
  invest.charger  invest.install
  compare.ice_mpg  compare.ev_mpkwh  compare.fuel_price  compare.ice_maint_per_mile`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:       %s\n", config.DatabasePath(appCfg, store.DefaultPath()))
	fmt.Printf("    Currency:       %s\n", appCfg.General.Currency)
	fmt.Printf("    Default period: %s\n", appCfg.General.DefaultPeriod)
	fmt.Printf("    Undo window:    %ds\n", appCfg.General.UndoSeconds)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", appCfg.Appearance.Theme)
	fmt.Println()

	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	fmt.Println("  [Prices per kWh]")
	fmt.Printf("    public:     %s\n", cli.FormatRate(s.State.Prices.Public))
	fmt.Printf("    public_exp: %s\n", cli.FormatRate(s.State.Prices.PublicExp))
	fmt.Printf("    home:       %s\n", cli.FormatRate(s.State.Prices.Home))
	fmt.Printf("    home_exp:   %s\n", cli.FormatRate(s.State.Prices.HomeExp))
	fmt.Println()

	fmt.Println("  [Charger investment]")
	fmt.Printf("    charger: %s\n", cli.FormatMoney(s.State.Investment.Charger))
	fmt.Printf("    install: %s\n", cli.FormatMoney(s.State.Investment.Install))
	fmt.Println()

	fmt.Println("  [Comparison assumptions]")
	fmt.Printf("    ICE mpg:         %.1f\n", s.State.Compare.ICEMpg)
	fmt.Printf("    EV mi/kWh:       %.1f\n", s.State.Compare.EVMilesPerKwh)
	fmt.Printf("    Fuel price/L:    %s\n", cli.FormatMoney(s.State.Compare.FuelPrice))
	fmt.Printf("    ICE maint/mi:    %s\n", cli.FormatMoney(s.State.Compare.ICEMaintPerMile))
	fmt.Println()

	if last, ok := store.LastBackup(kv); ok {
		fmt.Printf("  Last backup: %s\n", last.Format("2006-01-02 15:04"))
	} else {
		fmt.Println("  Last backup: never (run `ev-log export -o backup.json`)")
	}
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key := args[0]
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", args[1])
	}

	kv, err := openKV()
	if err != nil {
		return err
	}
	defer kv.Close()
	s := loadSession(kv)

	var unknownKey error
	err = s.UpdateSettings(func(st *model.State) {
		switch key {
		case "price.public":
			st.Prices.Public = value
		case "price.public_exp":
			st.Prices.PublicExp = value
		case "price.home":
			st.Prices.Home = value
		case "price.home_exp":
			st.Prices.HomeExp = value
		case "invest.charger":
			st.Investment.Charger = value
		case "invest.install":
			st.Investment.Install = value
		case "compare.ice_mpg":
			st.Compare.ICEMpg = value
		case "compare.ev_mpkwh":
			st.Compare.EVMilesPerKwh = value
		case "compare.fuel_price":
			st.Compare.FuelPrice = value
		case "compare.ice_maint_per_mile":
			st.Compare.ICEMaintPerMile = value
		default:
			unknownKey = fmt.Errorf("unknown setting %q", key)
		}
	})
	if unknownKey != nil {
		return unknownKey
	}
	if err != nil {
		return err
	}

	fmt.Printf("  %s = %v\n", key, value)
	return nil
}
