package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lcatrace/internal/adapters/lci"
	"lcatrace/internal/adapters/scorecache"
	"lcatrace/internal/adapters/sqlite"
	"lcatrace/internal/config"
	"lcatrace/internal/ports"
)

var (
	cfgFile  string
	verbose  bool
	v        = config.New()
	settings *config.Settings
	store    *sqlite.Store
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lcatrace-cli",
	Short: "Explore the supply chains of a life-cycle inventory",
	Long: `lcatrace-cli walks the technosphere graph of a life-cycle inventory
from a chosen activity.

It prints the quantities required along the supply chain, or how the impact
score of the activity is distributed over its suppliers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		settings, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}

		store = sqlite.NewStore()
		if err := store.Open(settings.DB); err != nil {
			return err
		}
		logger.Debug("opened inventory", "db", store.Path())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/"+config.DefaultConfigFile+")")
	flags.String("db", config.DBPath(), "path to the inventory database")
	flags.String("indent", "  ", "indentation unit repeated once per level")
	flags.String("method", "", "impact assessment method for calculate and unit-score")
	flags.BoolVar(&verbose, "verbose", false, "log debug output and data warnings")

	v.BindPFlag("db", flags.Lookup("db"))
	v.BindPFlag("indent", flags.Lookup("indent"))
	v.BindPFlag("method", flags.Lookup("method"))
}

// scorer returns the unit score provider backed by the matrix solver,
// memoized in a cache shared by every traversal of the process
func scorer() (ports.UnitScoreProvider, *scorecache.Cache) {
	cache := scorecache.New(settings.CacheTTL)
	return scorecache.NewProvider(lci.NewSolver(store), cache), cache
}
