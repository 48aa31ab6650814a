package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lcatrace/internal/adapters/fixture"
	"lcatrace/internal/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import an inventory from a YAML file",
	Long: `Import databases, activities, exchanges and impact methods from a YAML
inventory file. Activities already present with the same key are replaced,
together with their exchanges.

Examples:
  lcatrace-cli import ecoinvent-excerpt.yaml
  lcatrace-cli --db /tmp/test.db import fixture.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, err := fixture.LoadFile(args[0])
		if err != nil {
			return err
		}

		stats, err := commands.NewImportCommand(store, dataset).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d activities, %d exchanges, %d methods (%d factors) in %s\n",
			stats.Activities, stats.Exchanges, stats.Methods, stats.Factors, stats.Duration.Round(1e6))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
