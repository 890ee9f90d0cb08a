package plan

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateTasksFromTemplates(t *testing.T) {
	templates := []TaskTemplate{
		{Title: "Analysis", Type: TaskRequirement, Priority: PriorityHigh, EstimatedHours: 8},
		{Title: "Design", Type: TaskDesign, Priority: PriorityHigh, DependsOn: []string{"Analysis"}},
		{Title: "Build", Type: TaskImplementation, Priority: PriorityHigh, DependsOn: []string{"Analysis", "Design"}},
	}

	tasks, warnings := GenerateTasks("proj-1", ProjectWebApp, templates, nil, testNow)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}

	for i, task := range tasks {
		if task.Title != templates[i].Title {
			t.Errorf("task %d: title %q, want template order preserved", i, task.Title)
		}
		if task.Status != StatusPending {
			t.Errorf("task %d: status %q, want pending", i, task.Status)
		}
		if len(task.ID) != 36 {
			t.Errorf("task %d: id %q is not a uuid", i, task.ID)
		}
	}

	if len(tasks[0].DependsOn) != 0 {
		t.Errorf("Analysis has dependencies: %v", tasks[0].DependsOn)
	}
	if len(tasks[1].DependsOn) != 1 || tasks[1].DependsOn[0] != tasks[0].ID {
		t.Errorf("Design deps = %v, want [%s]", tasks[1].DependsOn, tasks[0].ID)
	}
	if len(tasks[2].DependsOn) != 2 {
		t.Errorf("Build deps = %v, want both predecessors", tasks[2].DependsOn)
	}
}

func TestGenerateTasksDropsForwardDependency(t *testing.T) {
	templates := []TaskTemplate{
		{Title: "First", Type: TaskDesign, Priority: PriorityMedium, DependsOn: []string{"Second"}},
		{Title: "Second", Type: TaskImplementation, Priority: PriorityMedium},
	}

	tasks, warnings := GenerateTasks("proj-1", ProjectWebApp, templates, nil, testNow)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if len(tasks[0].DependsOn) != 0 {
		t.Errorf("forward dependency was not dropped: %v", tasks[0].DependsOn)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Second") {
		t.Errorf("warnings = %v, want one naming the unknown template", warnings)
	}
}

func TestEnrichDescription(t *testing.T) {
	reqs := []Requirement{
		{ID: "r1", Title: "REQ-1: Login with SSO", Description: "Users must auth with SSO"},
		{ID: "r2", Title: "REQ-2: Export reports", Description: "Reports can be exported"},
	}
	tmpl := TaskTemplate{
		Title:       "Authentication and Authorization",
		Description: "Implement auth flows.",
	}

	got := enrichDescription(tmpl, reqs)
	if !strings.Contains(got, "REQ-1: Login with SSO") {
		t.Errorf("description missing related requirement: %q", got)
	}
	if strings.Contains(got, "REQ-2") {
		t.Errorf("unrelated requirement leaked in: %q", got)
	}

	plain := TaskTemplate{Title: "Launch Review", Description: "Final review."}
	if got := enrichDescription(plain, reqs); got != "Final review." {
		t.Errorf("unrelated task was enriched: %q", got)
	}
}

func TestDeriveRequirementTasks(t *testing.T) {
	reqs := []Requirement{
		{ID: "r1", Priority: PriorityMedium, Description: "The system should integrate with Stripe for payments"},
		{ID: "r2", Priority: PriorityCritical, Description: "Integrate Twilio for SMS, this is critical"},
		{ID: "r3", Priority: PriorityHigh, Description: "Page loads need performance tuning"},
		{ID: "r4", Priority: PriorityMedium, Description: "All data requires encryption at rest"},
		{ID: "r5", Priority: PriorityMedium, Description: "Users can pick an avatar"},
	}

	tasks := deriveRequirementTasks("proj-1", reqs, testNow)

	byTitle := make(map[string]Task)
	for _, task := range tasks {
		byTitle[task.Title] = task
	}

	stripe, ok := byTitle["Stripe Integration"]
	if !ok {
		t.Fatalf("missing Stripe Integration task, got %v", titles(tasks))
	}
	if stripe.Priority != PriorityMedium || stripe.Type != TaskImplementation {
		t.Errorf("stripe task = %s/%s", stripe.Type, stripe.Priority)
	}
	if stripe.Metadata.SourceRequirement != "r1" {
		t.Errorf("stripe source = %q, want r1", stripe.Metadata.SourceRequirement)
	}

	// A critical requirement bumps the integration task to high.
	twilio, ok := byTitle["Twilio Integration"]
	if !ok {
		t.Fatalf("missing Twilio Integration task")
	}
	if twilio.Priority != PriorityHigh {
		t.Errorf("twilio priority = %s, want high", twilio.Priority)
	}

	perf, ok := byTitle["Performance Optimization"]
	if !ok || perf.Priority != PriorityHigh {
		t.Errorf("performance task missing or wrong priority: %+v", perf)
	}
	sec, ok := byTitle["Security Implementation"]
	if !ok || sec.Priority != PriorityCritical {
		t.Errorf("security task missing or wrong priority: %+v", sec)
	}

	for _, task := range tasks {
		if task.HasDependencies() {
			t.Errorf("derived task %q has dependencies", task.Title)
		}
		if task.Metadata.SourceRequirement == "" {
			t.Errorf("derived task %q lacks a source requirement", task.Title)
		}
	}

	if _, ok := byTitle["Avatar Integration"]; ok {
		t.Error("non-matching requirement produced a task")
	}
	if len(tasks) != 4 {
		t.Errorf("got %d derived tasks, want 4: %v", len(tasks), titles(tasks))
	}
}

func titles(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}
