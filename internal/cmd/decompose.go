package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/planweave/planweave/internal/plan"
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose [prd-file]",
	Short: "Decompose a PRD into a work-breakdown plan",
	Long: `Decompose reads a product requirements document, extracts and classifies
its requirements, and generates a full work-breakdown plan: typed tasks
with dependencies, milestone targets, a duration estimate, and risks.

The PRD is read from the given file, or from stdin when the file is "-"
or omitted. The resulting plan is written to the plan file and a summary
is printed.

Examples:
  # Decompose a PRD file
  planweave decompose docs/prd.md --name "Project Hub"

  # Pipe a PRD through stdin and print the raw plan as JSON
  cat prd.md | planweave decompose --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecompose,
}

var (
	decomposeProjectID   string
	decomposeName        string
	decomposeDescription string
	decomposeOutput      string
	decomposeJSON        bool
)

func init() {
	rootCmd.AddCommand(decomposeCmd)

	decomposeCmd.Flags().StringVar(&decomposeProjectID, "project-id", "", "Project ID (default: a new UUID)")
	decomposeCmd.Flags().StringVar(&decomposeName, "name", "", "Project name, used for project-type detection")
	decomposeCmd.Flags().StringVar(&decomposeDescription, "description", "", "Short project description")
	decomposeCmd.Flags().StringVarP(&decomposeOutput, "output", "o", plan.PlanFileName, "Plan file to write")
	decomposeCmd.Flags().BoolVar(&decomposeJSON, "json", false, "Print the plan as JSON instead of a summary")
}

func runDecompose(cmd *cobra.Command, args []string) error {
	prd, err := readPRD(cmd, args)
	if err != nil {
		return err
	}

	projectID := decomposeProjectID
	if projectID == "" {
		projectID = uuid.NewString()
	}

	d, logger, err := buildDecomposer()
	if err != nil {
		return err
	}
	defer logger.Close()

	result, err := d.Decompose(plan.Project{
		ID:          projectID,
		Name:        decomposeName,
		Description: decomposeDescription,
		PRD:         prd,
	})
	if err != nil {
		return fmt.Errorf("decomposition failed: %w", err)
	}

	if err := plan.Save(result, decomposeOutput); err != nil {
		return err
	}

	if decomposeJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderSummary(result))
	fmt.Fprintf(cmd.OutOrStdout(), "\nPlan written to %s\n", decomposeOutput)
	return nil
}

// readPRD loads the PRD text from the argument file, or stdin for "-" or
// no argument.
func readPRD(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read PRD from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read PRD file: %w", err)
	}
	return string(data), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
