package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "View a saved plan",
	Long: `View prints the summary of a previously saved plan, or opens an
interactive browser with --interactive.

Examples:
  # Print the plan summary
  planweave view

  # Browse tasks interactively
  planweave view -i

  # Dump the raw plan
  planweave view --json`,
	RunE: runView,
}

var (
	viewPlanPath    string
	viewJSON        bool
	viewInteractive bool
)

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVarP(&viewPlanPath, "plan", "p", plan.PlanFileName, "Plan file to view")
	viewCmd.Flags().BoolVar(&viewJSON, "json", false, "Print the plan as JSON")
	viewCmd.Flags().BoolVarP(&viewInteractive, "interactive", "i", false, "Browse the plan interactively")
}

func runView(cmd *cobra.Command, args []string) error {
	result, err := loadPlan(viewPlanPath)
	if err != nil {
		return err
	}

	if viewInteractive {
		return tui.Run(result)
	}
	if viewJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderSummary(result))
	return nil
}
