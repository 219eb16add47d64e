package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/insterion/ev-log/internal/calc"
	"github.com/insterion/ev-log/internal/cli"
	"github.com/insterion/ev-log/internal/config"
	"github.com/insterion/ev-log/internal/session"
	"github.com/insterion/ev-log/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPeriod string
	flagDB     string
	flagQuiet  bool

	appCfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ev-log",
	Short: "Personal EV charging cost log",
	Long:  "Track EV charging sessions and running costs, and compare against a petrol car.",
	RunE:  runSummary,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appCfg = cfg
		if cfg.General.Currency != "" {
			cli.Currency = cfg.General.Currency
		}
		return nil
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPeriod, "period", "p", "", "Reporting window: all, this, or last")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress and warning output")
}

// openKV opens the SQLite store at the resolved path: --db flag, then
// EV_LOG_DB / config, then the XDG default.
func openKV() (*store.Store, error) {
	path := flagDB
	if path == "" {
		path = config.DatabasePath(appCfg, store.DefaultPath())
	}
	return store.Open(path)
}

// loadSession is the shared data loading path used by all commands.
func loadSession(kv store.KV) *session.Session {
	st, err := store.LoadState(kv)
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  warning: %v\n", err)
	}

	opts := []session.Option{}
	if secs := appCfg.General.UndoSeconds; secs > 0 {
		opts = append(opts, session.WithUndoWindow(time.Duration(secs)*time.Second))
	}
	return session.New(st, store.Persist{KV: kv}, opts...)
}

// activePeriod resolves the reporting window: the --period flag wins and
// is remembered for next time; otherwise the remembered value, then the
// configured default. A bad remembered token falls back silently.
func activePeriod(kv store.KV) (calc.Period, error) {
	if flagPeriod != "" {
		p, err := calc.ParsePeriod(flagPeriod)
		if err != nil {
			return calc.PeriodAll, err
		}
		if err := store.SetLastPeriod(kv, p.String()); err != nil && !flagQuiet {
			fmt.Fprintf(os.Stderr, "  warning: remembering period: %v\n", err)
		}
		return p, nil
	}
	if remembered := store.LastPeriod(kv); remembered != "" {
		if p, err := calc.ParsePeriod(remembered); err == nil {
			return p, nil
		}
	}
	p, err := calc.ParsePeriod(appCfg.General.DefaultPeriod)
	if err != nil {
		return calc.PeriodAll, nil
	}
	return p, nil
}
