package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
)

var processesOnly bool

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List or search activities",
	Long: `List the activities of the inventory, ordered by key.

With a query, activities are ranked by fuzzy match against their name,
key and location.

Examples:
  lcatrace-cli list
  lcatrace-cli list --processes
  lcatrace-cli list "steel RER"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var activities []domain.Activity
		if len(args) == 1 {
			results, err := commands.NewSearchCommand(store, args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			for _, r := range results {
				if processesOnly && r.Type.IsFlow() {
					continue
				}
				activities = append(activities, r.Activity)
			}
		} else {
			var err error
			activities, err = commands.NewListActivitiesCommand(store, processesOnly).Execute(ctx)
			if err != nil {
				return err
			}
		}

		if len(activities) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, a := range activities {
			fmt.Printf("%s  %s\n", a.Key, a.Label().Text)
		}
		return nil
	},
}

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List impact assessment methods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		methods, err := commands.NewListMethodsCommand(store).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, m := range methods {
			fmt.Println(m)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&processesOnly, "processes", "p", false, "hide elementary flows")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(methodsCmd)
}
