package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lcatrace/internal/application"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
)

var unitScoreCmd = &cobra.Command{
	Use:   "unit-score <database/code>",
	Short: "Print the score of one unit of an activity's product",
	Long: `Solve the inventory for one unit of the activity's reference product and
print its characterized score for --method.

Examples:
  lcatrace-cli unit-score ei/steel --method "climate change"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := application.ParseKey(args[0])
		if err != nil {
			return err
		}

		provider, _ := scorer()
		score, err := commands.NewUnitScoreCommand(provider, key, domain.Method(settings.Method)).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%g\n", score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unitScoreCmd)
}
