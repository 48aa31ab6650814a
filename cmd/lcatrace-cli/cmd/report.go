package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"lcatrace/internal/application"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/config"
	"lcatrace/internal/domain"
)

var supplyChainCmd = &cobra.Command{
	Use:   "supply-chain <database/code>",
	Short: "Print the quantities required along a supply chain",
	Long: `Print one line per activity reached from the root, indented by depth,
with the amount of its product needed to deliver --amount of the root.

Examples:
  lcatrace-cli supply-chain ei/bicycle
  lcatrace-cli supply-chain ei/bicycle --max-level 2 --cutoff 0.01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := application.ParseKey(args[0])
		if err != nil {
			return err
		}

		opts := commands.SupplyChainOptions{
			Amount:   settings.SupplyChain.Amount,
			MaxLevel: settings.SupplyChain.MaxLevel,
			Cutoff:   settings.SupplyChain.Cutoff,
			Indent:   settings.Indent,
		}

		result, err := commands.NewSupplyChainCommand(store, root, opts).
			WithLogger(logger).
			Execute(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		logger.Debug("supply chain done", "records", result.Records, "warnings", len(result.Warnings))
		return nil
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate <database/code>",
	Short: "Attribute an impact score over a supply chain",
	Long: `Print how the score of --amount of the root activity for --method is
distributed over its supply chain: fraction of the root score, absolute
score, amount and label of every contributing activity.

Examples:
  lcatrace-cli calculate ei/bicycle --method "climate change"
  lcatrace-cli calculate ei/bicycle --method gwp --max-level 5 --cutoff 0.01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := application.ParseKey(args[0])
		if err != nil {
			return err
		}

		provider, cache := scorer()
		opts := commands.RecursiveOptions{
			Amount:     settings.Recursive.Amount,
			MaxLevel:   settings.Recursive.MaxLevel,
			Cutoff:     settings.Recursive.Cutoff,
			Indent:     settings.Indent,
			LabelWidth: settings.Recursive.LabelWidth,
			Cache:      cache,
		}

		result, err := commands.NewRecursiveCalculationCommand(store, provider, root, domain.Method(settings.Method), opts).
			WithLogger(logger).
			Execute(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		logger.Debug("calculation done", "records", result.Records, "warnings", len(result.Warnings))
		return nil
	},
}

// bindTraversalFlags registers the tuning flags of a traversal command and
// binds them to the config section, so flags override file and environment
func bindTraversalFlags(cmd *cobra.Command, section string, defaults config.Traversal) {
	flags := cmd.Flags()
	flags.Float64("amount", defaults.Amount, "demanded amount of the root product")
	flags.Int("max-level", defaults.MaxLevel, "deepest level printed (root is 0)")
	flags.Float64("cutoff", defaults.Cutoff, "prune contributions below this threshold")

	v.BindPFlag(section+".amount", flags.Lookup("amount"))
	v.BindPFlag(section+".max_level", flags.Lookup("max-level"))
	v.BindPFlag(section+".cutoff", flags.Lookup("cutoff"))
}

func init() {
	bindTraversalFlags(supplyChainCmd, "supply_chain", config.Traversal{Amount: 1, MaxLevel: 7, Cutoff: 0.005})
	bindTraversalFlags(calculateCmd, "recursive", config.Traversal{Amount: 1, MaxLevel: 3, Cutoff: 0.0025})

	calculateCmd.Flags().Int("label-width", 130, "truncate labels to this many characters (0 disables)")
	v.BindPFlag("recursive.label_width", calculateCmd.Flags().Lookup("label-width"))

	rootCmd.AddCommand(supplyChainCmd)
	rootCmd.AddCommand(calculateCmd)
}
