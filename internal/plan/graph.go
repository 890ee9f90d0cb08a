package plan

import (
	"fmt"
	"sort"
)

// BuildDependencyMap projects the tasks' dependency sets into an adjacency
// map keyed by task ID. Tasks without dependencies are omitted, so the map
// only carries edges.
func BuildDependencyMap(tasks []Task) map[string][]string {
	graph := make(map[string][]string)
	for i := range tasks {
		if tasks[i].HasDependencies() {
			graph[tasks[i].ID] = append([]string(nil), tasks[i].DependsOn...)
		}
	}
	return graph
}

// ComputeExecutionOrder groups task IDs into batches where every task in a
// batch has all of its dependencies satisfied by earlier batches. Tasks in
// the same batch can run in parallel.
//
// Tasks caught in a dependency cycle never become ready and are left out
// of the returned order. Within a batch, IDs keep task order.
func ComputeExecutionOrder(tasks []Task) [][]string {
	completed := make(map[string]bool, len(tasks))
	scheduled := make(map[string]bool, len(tasks))

	var order [][]string
	for len(scheduled) < len(tasks) {
		var batch []string
		for i := range tasks {
			task := &tasks[i]
			if scheduled[task.ID] {
				continue
			}
			ready := true
			for _, dep := range task.DependsOn {
				if !completed[dep] {
					ready = false
					break
				}
			}
			if ready {
				batch = append(batch, task.ID)
			}
		}
		if len(batch) == 0 {
			break
		}
		for _, id := range batch {
			scheduled[id] = true
			completed[id] = true
		}
		order = append(order, batch)
	}
	return order
}

// dependsTransitively reports whether start transitively depends on target
// through the tasks' DependsOn edges.
func dependsTransitively(tasks []Task, start, target string) bool {
	deps := make(map[string][]string, len(tasks))
	for i := range tasks {
		deps[tasks[i].ID] = tasks[i].DependsOn
	}

	visited := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		stack = append(stack, deps[id]...)
	}
	return false
}

// wouldCreateCycle reports whether adding from to to's dependency set
// would close a dependency cycle. That happens exactly when from already
// depends on to, directly or transitively, or when the edge is
// self-referential.
func wouldCreateCycle(tasks []Task, from, to string) bool {
	if from == to {
		return true
	}
	return dependsTransitively(tasks, from, to)
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

// ValidationSeverity grades a validation message.
type ValidationSeverity string

const (
	// SeverityError marks a structural defect that makes the plan unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning marks a suspicious but workable condition.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationMessage is a single finding from plan validation.
type ValidationMessage struct {
	Severity ValidationSeverity `json:"severity"`
	TaskID   string             `json:"task_id,omitempty"`
	Message  string             `json:"message"`
}

// Validate checks a result for structural defects: duplicate task IDs,
// dangling dependency references, dependency cycles, dangling milestone
// members, and invalid enum values. An empty return means the plan is
// structurally sound.
func Validate(result *Result) []ValidationMessage {
	var messages []ValidationMessage

	ids := make(map[string]bool, len(result.Tasks))
	for i := range result.Tasks {
		task := &result.Tasks[i]
		if ids[task.ID] {
			messages = append(messages, ValidationMessage{
				Severity: SeverityError,
				TaskID:   task.ID,
				Message:  "duplicate task id",
			})
		}
		ids[task.ID] = true
	}

	for i := range result.Tasks {
		task := &result.Tasks[i]
		if !task.Type.IsValid() {
			messages = append(messages, ValidationMessage{
				Severity: SeverityError,
				TaskID:   task.ID,
				Message:  fmt.Sprintf("unknown task type %q", task.Type),
			})
		}
		if !task.Priority.IsValid() {
			messages = append(messages, ValidationMessage{
				Severity: SeverityError,
				TaskID:   task.ID,
				Message:  fmt.Sprintf("unknown priority %q", task.Priority),
			})
		}
		seen := make(map[string]bool, len(task.DependsOn))
		for _, dep := range task.DependsOn {
			if dep == task.ID {
				messages = append(messages, ValidationMessage{
					Severity: SeverityError,
					TaskID:   task.ID,
					Message:  "task depends on itself",
				})
			}
			if !ids[dep] {
				messages = append(messages, ValidationMessage{
					Severity: SeverityError,
					TaskID:   task.ID,
					Message:  fmt.Sprintf("dependency %q does not exist", dep),
				})
			}
			if seen[dep] {
				messages = append(messages, ValidationMessage{
					Severity: SeverityWarning,
					TaskID:   task.ID,
					Message:  fmt.Sprintf("duplicate dependency %q", dep),
				})
			}
			seen[dep] = true
		}
	}

	if cyclic := cyclicTaskIDs(result.Tasks); len(cyclic) > 0 {
		messages = append(messages, ValidationMessage{
			Severity: SeverityError,
			Message:  fmt.Sprintf("dependency cycle involving tasks: %v", cyclic),
		})
	}

	for i := range result.Milestones {
		ms := &result.Milestones[i]
		for _, id := range ms.TaskIDs {
			if !ids[id] {
				messages = append(messages, ValidationMessage{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("milestone %q references missing task %q", ms.Name, id),
				})
			}
		}
	}

	return messages
}

// cyclicTaskIDs returns the sorted IDs of tasks that can never be
// scheduled because they sit on or behind a dependency cycle.
func cyclicTaskIDs(tasks []Task) []string {
	reachable := make(map[string]bool, len(tasks))
	for _, batch := range ComputeExecutionOrder(tasks) {
		for _, id := range batch {
			reachable[id] = true
		}
	}

	var cyclic []string
	for i := range tasks {
		if !reachable[tasks[i].ID] {
			cyclic = append(cyclic, tasks[i].ID)
		}
	}
	sort.Strings(cyclic)
	return cyclic
}
