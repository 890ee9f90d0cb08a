package plan

import (
	"strings"
	"testing"
	"time"
)

const webPRD = `A web dashboard for managing customer projects.

# Requirements
- Users must be able to create and archive projects
- The dashboard should show project health at a glance
- Could support CSV export

# User Stories
- As a manager, I want weekly summaries emailed to me

# Technical Requirements
- Integrate with Stripe for billing
- Store data in PostgreSQL

# Acceptance Criteria
- Creating a project takes under a minute
`

func fixedClock() func() time.Time {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newTestDecomposer() *Decomposer {
	cfg := DefaultConfig()
	cfg.Now = fixedClock()
	return NewDecomposerWithConfig(cfg)
}

func TestDecomposeWebProject(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{ID: "proj-1", Name: "Project Hub", PRD: webPRD})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if result.ProjectType != ProjectWebApp {
		t.Errorf("project type = %s, want web-app", result.ProjectType)
	}
	if len(result.Requirements) != 7 {
		t.Errorf("got %d requirements, want 7", len(result.Requirements))
	}
	if result.TaskCount() == 0 {
		t.Fatal("no tasks generated")
	}
	if len(result.Milestones) == 0 {
		t.Error("no milestones generated")
	}
	if result.EstimatedDays < 1 {
		t.Errorf("estimated days = %d", result.EstimatedDays)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("clean run produced warnings: %v", result.Warnings)
	}

	// The Stripe requirement spawns an integration task.
	var stripe *Task
	for i := range result.Tasks {
		if result.Tasks[i].Title == "Stripe Integration" {
			stripe = &result.Tasks[i]
		}
	}
	if stripe == nil {
		t.Fatal("missing Stripe Integration task")
	}
	if stripe.Metadata.SourceRequirement == "" {
		t.Error("integration task lacks a source requirement")
	}

	if msgs := Validate(result); len(msgs) != 0 {
		t.Errorf("generated plan fails validation: %v", msgs)
	}

	// Every task appears exactly once in the execution order.
	seen := make(map[string]int)
	for _, batch := range result.ExecutionOrder {
		for _, id := range batch {
			seen[id]++
		}
	}
	for i := range result.Tasks {
		if seen[result.Tasks[i].ID] != 1 {
			t.Errorf("task %q scheduled %d times", result.Tasks[i].Title, seen[result.Tasks[i].ID])
		}
	}

	for id, deps := range result.DependencyGraph {
		if len(deps) == 0 {
			t.Errorf("dependency graph has empty entry for %s", id)
		}
	}
}

func TestDecomposePriorityScenario(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{
		ID:  "proj-login",
		PRD: "## Requirements\n- User must be able to login\n- System should send email",
	})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if len(result.Requirements) < 2 {
		t.Fatalf("got %d requirements, want at least 2", len(result.Requirements))
	}
	var hasCritical, hasHigh bool
	for _, req := range result.Requirements {
		if req.Type != RequirementFunctional {
			t.Errorf("requirement %q type = %s, want functional", req.Title, req.Type)
		}
		switch req.Priority {
		case PriorityCritical:
			hasCritical = true
		case PriorityHigh:
			hasHigh = true
		}
	}
	if !hasCritical || !hasHigh {
		t.Errorf("priorities critical=%v high=%v, want both", hasCritical, hasHigh)
	}
}

func TestDecomposeDurationBound(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{ID: "proj-bound", PRD: webPRD})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	// The buffered critical path can never exceed the buffered sum of all
	// task durations.
	cfg := DefaultEstimatorConfig()
	totalDays := 0.0
	for i := range result.Tasks {
		hours := result.Tasks[i].Metadata.EstimatedHours
		if hours <= 0 {
			hours = cfg.DefaultTaskHours
		}
		totalDays += hours / cfg.HoursPerDay
	}
	ceiling := int(totalDays*cfg.BufferFactor) + 1
	if result.EstimatedDays < 1 || result.EstimatedDays > ceiling {
		t.Errorf("estimated days = %d, want within [1, %d]", result.EstimatedDays, ceiling)
	}
}

func TestDecomposeMobileProject(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{
		ID:   "proj-2",
		Name: "Walkabout",
		PRD:  "A mobile app for iOS that tracks hiking routes.\n\n# Requirements\n- Users must record routes offline",
	})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if result.ProjectType != ProjectMobileApp {
		t.Fatalf("project type = %s, want mobile-app", result.ProjectType)
	}
	var hasMobile, hasStore bool
	for i := range result.Tasks {
		if strings.Contains(result.Tasks[i].Title, "Mobile") {
			hasMobile = true
		}
		if strings.Contains(result.Tasks[i].Title, "App Store") {
			hasStore = true
		}
	}
	if !hasMobile {
		t.Error("no Mobile task in mobile plan")
	}
	if !hasStore {
		t.Error("no App Store task in mobile plan")
	}
}

func TestDecomposeHeadinglessPRD(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{
		ID:  "proj-3",
		PRD: "We want an internal tool for tracking hardware inventory across offices.",
	})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if len(result.Requirements) != 0 {
		t.Errorf("got %d requirements from unstructured text, want 0", len(result.Requirements))
	}
	if result.TaskCount() == 0 {
		t.Error("template tasks should still be generated")
	}
	if result.ProjectType != ProjectWebApp {
		t.Errorf("project type = %s, want the web-app default", result.ProjectType)
	}
}

func TestDecomposeFallsBackToDescription(t *testing.T) {
	d := newTestDecomposer()
	result, err := d.Decompose(Project{
		ID:          "proj-4",
		Name:        "Gateway",
		Description: "A backend only api for partner access",
	})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if result.ProjectType != ProjectAPIService {
		t.Errorf("project type = %s, want api-service from description", result.ProjectType)
	}
}

func TestDecomposeRejectsEmptyProjectID(t *testing.T) {
	d := newTestDecomposer()
	if _, err := d.Decompose(Project{Name: "No ID"}); err == nil {
		t.Fatal("expected error for empty project id")
	} else if !strings.Contains(err.Error(), "project id") {
		t.Errorf("error = %v", err)
	}
}

func TestDecomposeDeterministicShape(t *testing.T) {
	d := newTestDecomposer()
	first, err := d.Decompose(Project{ID: "proj-5", PRD: webPRD})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	second, err := d.Decompose(Project{ID: "proj-5", PRD: webPRD})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if first.TaskCount() != second.TaskCount() {
		t.Errorf("task counts differ: %d vs %d", first.TaskCount(), second.TaskCount())
	}
	if first.EstimatedDays != second.EstimatedDays {
		t.Errorf("estimates differ: %d vs %d", first.EstimatedDays, second.EstimatedDays)
	}
	for i := range first.Tasks {
		if first.Tasks[i].Title != second.Tasks[i].Title {
			t.Errorf("task %d title differs: %q vs %q", i, first.Tasks[i].Title, second.Tasks[i].Title)
		}
	}
}

func TestDecomposeRecorder(t *testing.T) {
	var got []PatternSummary
	cfg := DefaultConfig()
	cfg.Now = fixedClock()
	cfg.Recorder = RecorderFunc(func(summary PatternSummary) {
		got = append(got, summary)
	})
	d := NewDecomposerWithConfig(cfg)

	result, err := d.Decompose(Project{ID: "proj-6", Name: "Hub", PRD: webPRD})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recorder called %d times, want 1", len(got))
	}
	if got[0].ProjectName != "Hub" || got[0].TaskCount != result.TaskCount() {
		t.Errorf("summary = %+v", got[0])
	}
	if got[0].TaskTypeCounts[TaskImplementation] == 0 {
		t.Error("summary missing task type counts")
	}
}

func TestDecomposeRecorderPanicIsSwallowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Now = fixedClock()
	cfg.Recorder = RecorderFunc(func(PatternSummary) {
		panic("recorder exploded")
	})
	d := NewDecomposerWithConfig(cfg)

	if _, err := d.Decompose(Project{ID: "proj-7", PRD: webPRD}); err != nil {
		t.Fatalf("recorder panic leaked: %v", err)
	}
}
