package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planweave/planweave/internal/plan"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Apply incremental changes to an existing plan",
	Long: `Refine adjusts a previously generated plan without redoing the full
decomposition: add or remove tasks, and add or remove dependency edges.
The dependency graph, execution order, and duration estimate are
recomputed and the plan file is rewritten.

Dependency edges are written FROM:TO, meaning FROM must finish before TO
starts. Edges that would create a cycle are rejected and reported as
warnings.

Examples:
  # Add a task with no dependencies
  planweave refine --add-task "Accessibility Audit"

  # Add richer tasks from a YAML file
  planweave refine --tasks-file extra-tasks.yaml

  # Remove a task and rewire an edge
  planweave refine --remove-task 4f1c... --add-dep 81aa...:93bd...`,
	RunE: runRefine,
}

var (
	refinePlanPath    string
	refineAddTasks    []string
	refineTasksFile   string
	refineRemoveTasks []string
	refineAddDeps     []string
	refineRemoveDeps  []string
	refineJSON        bool
)

func init() {
	rootCmd.AddCommand(refineCmd)

	refineCmd.Flags().StringVarP(&refinePlanPath, "plan", "p", plan.PlanFileName, "Plan file to refine")
	refineCmd.Flags().StringArrayVar(&refineAddTasks, "add-task", nil, "Add an implementation task with this title (repeatable)")
	refineCmd.Flags().StringVar(&refineTasksFile, "tasks-file", "", "YAML file of task templates to add")
	refineCmd.Flags().StringArrayVar(&refineRemoveTasks, "remove-task", nil, "Remove the task with this ID (repeatable)")
	refineCmd.Flags().StringArrayVar(&refineAddDeps, "add-dep", nil, "Add a dependency edge FROM:TO (repeatable)")
	refineCmd.Flags().StringArrayVar(&refineRemoveDeps, "remove-dep", nil, "Remove a dependency edge FROM:TO (repeatable)")
	refineCmd.Flags().BoolVar(&refineJSON, "json", false, "Print the refined plan as JSON instead of a summary")
}

func runRefine(cmd *cobra.Command, args []string) error {
	delta, err := buildDelta(refineAddTasks, refineTasksFile, refineRemoveTasks, refineAddDeps, refineRemoveDeps)
	if err != nil {
		return err
	}
	if delta.IsEmpty() {
		return fmt.Errorf("nothing to refine: specify at least one change flag")
	}

	result, err := loadPlan(refinePlanPath)
	if err != nil {
		return err
	}

	d, logger, err := buildDecomposer()
	if err != nil {
		return err
	}
	defer logger.Close()

	refined, err := d.Refine(result, delta)
	if err != nil {
		return fmt.Errorf("refinement failed: %w", err)
	}

	if err := plan.Save(refined, refinePlanPath); err != nil {
		return err
	}

	if refineJSON {
		return printJSON(cmd.OutOrStdout(), refined)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderSummary(refined))
	fmt.Fprintf(cmd.OutOrStdout(), "\nPlan updated at %s\n", refinePlanPath)
	return nil
}

// buildDelta assembles a plan.Delta from the refine flags.
func buildDelta(addTasks []string, tasksFile string, removeTasks, addDeps, removeDeps []string) (plan.Delta, error) {
	var delta plan.Delta

	for _, title := range addTasks {
		if strings.TrimSpace(title) == "" {
			return plan.Delta{}, fmt.Errorf("--add-task title cannot be empty")
		}
		delta.TasksToAdd = append(delta.TasksToAdd, plan.TaskTemplate{
			Title:    strings.TrimSpace(title),
			Type:     plan.TaskImplementation,
			Priority: plan.PriorityMedium,
		})
	}

	if tasksFile != "" {
		data, err := os.ReadFile(tasksFile)
		if err != nil {
			return plan.Delta{}, fmt.Errorf("failed to read tasks file: %w", err)
		}
		var templates []plan.TaskTemplate
		if err := yaml.Unmarshal(data, &templates); err != nil {
			return plan.Delta{}, fmt.Errorf("failed to parse tasks file: %w", err)
		}
		delta.TasksToAdd = append(delta.TasksToAdd, templates...)
	}

	delta.TasksToRemove = removeTasks

	for _, spec := range addDeps {
		edge, err := parseEdge(spec)
		if err != nil {
			return plan.Delta{}, err
		}
		delta.DependenciesToAdd = append(delta.DependenciesToAdd, edge)
	}
	for _, spec := range removeDeps {
		edge, err := parseEdge(spec)
		if err != nil {
			return plan.Delta{}, err
		}
		delta.DependenciesToRemove = append(delta.DependenciesToRemove, edge)
	}

	return delta, nil
}

// parseEdge splits a FROM:TO edge spec.
func parseEdge(spec string) (plan.Edge, error) {
	from, to, ok := strings.Cut(spec, ":")
	if !ok || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return plan.Edge{}, fmt.Errorf("invalid edge %q: expected FROM:TO", spec)
	}
	return plan.Edge{From: strings.TrimSpace(from), To: strings.TrimSpace(to)}, nil
}
