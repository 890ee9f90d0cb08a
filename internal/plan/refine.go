package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planweave/planweave/internal/errors"
)

// Edge names a single dependency: From must complete before To starts.
// Applying an Edge appends From to To's dependency set.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Delta describes an incremental change to an existing plan.
//
// Tasks to add are expressed as templates; their DependsOn entries resolve
// by title against the tasks present after removals, including templates
// added earlier in the same delta. Dependency edges reference task IDs.
type Delta struct {
	TasksToAdd           []TaskTemplate `json:"tasks_to_add,omitempty"`
	TasksToRemove        []string       `json:"tasks_to_remove,omitempty"`
	DependenciesToAdd    []Edge         `json:"dependencies_to_add,omitempty"`
	DependenciesToRemove []Edge         `json:"dependencies_to_remove,omitempty"`
}

// IsEmpty reports whether applying the delta would change nothing.
func (d Delta) IsEmpty() bool {
	return len(d.TasksToAdd) == 0 && len(d.TasksToRemove) == 0 &&
		len(d.DependenciesToAdd) == 0 && len(d.DependenciesToRemove) == 0
}

// Refine applies a delta to an existing plan and returns a new result with
// the dependency graph, execution order, and duration estimate recomputed.
// The input result is never mutated.
//
// References to unknown tasks are skipped, edge insertions that would
// close a dependency cycle are rejected, and every skip or rejection is
// reported through the new result's Warnings. A plan that already
// contains a cycle, which only a hand-edited plan file can produce,
// fails with ErrDependencyCycle. Requirements and risk
// factors carry over unchanged; milestones carry over with removed tasks
// stripped out.
func (d *Decomposer) Refine(result *Result, delta Delta) (*Result, error) {
	if result == nil {
		return nil, errors.NewValidationError("result cannot be nil").WithField("result")
	}

	now := d.cfg.Now()
	log := d.log.WithProject(result.ProjectID)
	next := result.Clone()

	next.Warnings = append(next.Warnings, removeTasks(next, delta.TasksToRemove)...)
	next.Warnings = append(next.Warnings, addTasks(next, delta.TasksToAdd, now)...)
	next.Warnings = append(next.Warnings, removeDependencies(next, delta.DependenciesToRemove)...)
	next.Warnings = append(next.Warnings, addDependencies(next, delta.DependenciesToAdd)...)

	// Edge insertions that would close a cycle are rejected above, so a
	// cycle here means the input plan was already malformed, e.g. a
	// hand-edited plan file. Refuse rather than emit a partial schedule.
	if cyclic := cyclicTaskIDs(next.Tasks); len(cyclic) > 0 {
		return nil, errors.Wrapf(errors.ErrDependencyCycle, "tasks %v", cyclic)
	}

	next.DependencyGraph = BuildDependencyMap(next.Tasks)
	next.ExecutionOrder = ComputeExecutionOrder(next.Tasks)
	next.EstimatedDays = EstimateDuration(next.Tasks, d.cfg.Estimator)
	next.CreatedAt = now

	log.Info("refinement complete",
		"tasks", next.TaskCount(),
		"estimated_days", next.EstimatedDays,
		"warnings", len(next.Warnings))
	return next, nil
}

// removeTasks drops the named tasks and strips their IDs from every other
// task's dependency set and from milestone membership.
func removeTasks(result *Result, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	var warnings []string
	removing := make(map[string]bool, len(ids))
	for _, id := range ids {
		if result.GetTask(id) == nil {
			warnings = append(warnings, fmt.Sprintf("remove task: %v", errors.NewNotFoundError("task", id)))
			continue
		}
		removing[id] = true
	}
	if len(removing) == 0 {
		return warnings
	}

	kept := result.Tasks[:0]
	for i := range result.Tasks {
		if !removing[result.Tasks[i].ID] {
			kept = append(kept, result.Tasks[i])
		}
	}
	result.Tasks = kept

	for i := range result.Tasks {
		result.Tasks[i].DependsOn = filterIDs(result.Tasks[i].DependsOn, removing)
	}
	for i := range result.Milestones {
		result.Milestones[i].TaskIDs = filterIDs(result.Milestones[i].TaskIDs, removing)
	}
	return warnings
}

// addTasks materializes delta templates, resolving dependency titles
// against the current task set. Tasks added earlier in the same delta are
// visible to later ones.
func addTasks(result *Result, templates []TaskTemplate, now time.Time) []string {
	var warnings []string

	idByTitle := make(map[string]string, len(result.Tasks))
	for i := range result.Tasks {
		idByTitle[result.Tasks[i].Title] = result.Tasks[i].ID
	}

	for _, tmpl := range templates {
		taskType := tmpl.Type
		if !taskType.IsValid() {
			taskType = TaskImplementation
		}
		priority := tmpl.Priority
		if !priority.IsValid() {
			priority = PriorityMedium
		}
		task := Task{
			ID:          uuid.NewString(),
			ProjectID:   result.ProjectID,
			Type:        taskType,
			Title:       tmpl.Title,
			Description: tmpl.Description,
			Status:      StatusPending,
			Priority:    priority,
			Metadata: TaskMetadata{
				EstimatedHours: tmpl.EstimatedHours,
				RequiredSkills: append([]string(nil), tmpl.Skills...),
			},
			CreatedAt: now,
		}
		for _, depTitle := range tmpl.DependsOn {
			depID, ok := idByTitle[depTitle]
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"add task %q: dropped dependency on unknown task %q", tmpl.Title, depTitle))
				continue
			}
			task.DependsOn = append(task.DependsOn, depID)
		}
		idByTitle[task.Title] = task.ID
		result.Tasks = append(result.Tasks, task)
	}
	return warnings
}

// filterIDs returns ids without the members of drop, preserving order.
func filterIDs(ids []string, drop map[string]bool) []string {
	kept := ids[:0]
	for _, id := range ids {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// removeDependencies deletes edges from tasks' dependency sets.
func removeDependencies(result *Result, edges []Edge) []string {
	var warnings []string
	for _, edge := range edges {
		task := result.GetTask(edge.To)
		if task == nil {
			warnings = append(warnings, fmt.Sprintf("remove dependency: %v", errors.NewNotFoundError("task", edge.To)))
			continue
		}
		found := false
		kept := task.DependsOn[:0]
		for _, dep := range task.DependsOn {
			if dep == edge.From {
				found = true
				continue
			}
			kept = append(kept, dep)
		}
		task.DependsOn = kept
		if !found {
			warnings = append(warnings, fmt.Sprintf(
				"remove dependency: task %q does not depend on %q", edge.To, edge.From))
		}
	}
	return warnings
}

// addDependencies inserts edges, skipping unknown references, duplicates,
// and any edge that would close a cycle.
func addDependencies(result *Result, edges []Edge) []string {
	var warnings []string
	for _, edge := range edges {
		task := result.GetTask(edge.To)
		if task == nil {
			warnings = append(warnings, fmt.Sprintf("add dependency: %v", errors.NewNotFoundError("task", edge.To)))
			continue
		}
		if result.GetTask(edge.From) == nil {
			warnings = append(warnings, fmt.Sprintf("add dependency: %v", errors.NewNotFoundError("task", edge.From)))
			continue
		}
		if containsID(task.DependsOn, edge.From) {
			continue
		}
		if wouldCreateCycle(result.Tasks, edge.From, edge.To) {
			warnings = append(warnings, fmt.Sprintf(
				"add dependency: edge %q -> %q would create a cycle, rejected", edge.From, edge.To))
			continue
		}
		task.DependsOn = append(task.DependsOn, edge.From)
	}
	return warnings
}

// containsID reports whether ids contains id.
func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
