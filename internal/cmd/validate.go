package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planweave/planweave/internal/errors"
	"github.com/planweave/planweave/internal/plan"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a saved plan for structural problems",
	Long: `Validate checks a saved plan for structural defects: duplicate or
dangling task references, dependency cycles, and invalid field values.
It exits non-zero when any error-severity finding exists.`,
	RunE: runValidate,
}

var validatePlanPath string

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validatePlanPath, "plan", "p", plan.PlanFileName, "Plan file to validate")
}

func runValidate(cmd *cobra.Command, args []string) error {
	result, err := loadPlan(validatePlanPath)
	if err != nil {
		return err
	}

	messages := plan.Validate(result)
	if len(messages) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Plan is valid: %d tasks, %d milestones\n",
			result.TaskCount(), len(result.Milestones))
		return nil
	}

	failed := false
	for _, msg := range messages {
		prefix := warnStyle.Render("warning")
		if msg.Severity == plan.SeverityError {
			prefix = riskStyle.Render("error")
			failed = true
		}
		if msg.TaskID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: task %s: %s\n", prefix, msg.TaskID, msg.Message)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", prefix, msg.Message)
		}
	}
	if failed {
		return errors.Wrapf(errors.ErrPlanInvalid, "%d findings", len(messages))
	}
	return nil
}
