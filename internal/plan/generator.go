package plan

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// enrichmentKeywords link template tasks to requirements touching the same
// concern. A task whose title or description mentions a keyword collects
// the titles of requirements mentioning it too.
var enrichmentKeywords = []string{
	"auth", "api", "database", "ui", "test", "deploy", "security",
}

// integrationPattern pulls the target system out of "integrate with X"
// style requirement text.
var integrationPattern = regexp.MustCompile(`(?i)integrate\s+(?:with\s+)?(\w+)`)

// GenerateTasks materializes the template set for the project type and
// derives additional tasks from individual requirements.
//
// Template tasks are created in declaration order. Dependencies are
// resolved by title against templates already materialized in this run;
// a dependency naming an unseen title is dropped and reported in the
// returned warnings. Requirement-derived tasks follow the template tasks
// and never carry dependencies.
func GenerateTasks(projectID string, projectType ProjectType, templates []TaskTemplate, reqs []Requirement, now time.Time) ([]Task, []string) {
	var tasks []Task
	var warnings []string

	idByTitle := make(map[string]string, len(templates))
	for _, tmpl := range templates {
		task := Task{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Type:        tmpl.Type,
			Title:       tmpl.Title,
			Description: enrichDescription(tmpl, reqs),
			Status:      StatusPending,
			Priority:    tmpl.Priority,
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
					"task %q: dropped dependency on unknown template %q", tmpl.Title, depTitle))
				continue
			}
			task.DependsOn = append(task.DependsOn, depID)
		}
		idByTitle[tmpl.Title] = task.ID
		tasks = append(tasks, task)
	}

	tasks = append(tasks, deriveRequirementTasks(projectID, reqs, now)...)
	return tasks, warnings
}

// enrichDescription appends the titles of related requirements to a
// template description, matched by shared enrichment keywords.
func enrichDescription(tmpl TaskTemplate, reqs []Requirement) string {
	taskText := strings.ToLower(tmpl.Title + " " + tmpl.Description)

	var related []string
	seen := make(map[string]bool)
	for _, kw := range enrichmentKeywords {
		if !strings.Contains(taskText, kw) {
			continue
		}
		for _, req := range reqs {
			if seen[req.ID] {
				continue
			}
			if strings.Contains(strings.ToLower(req.Description), kw) {
				seen[req.ID] = true
				related = append(related, req.Title)
			}
		}
	}

	if len(related) == 0 {
		return tmpl.Description
	}
	return tmpl.Description + "\n\nRelated requirements:\n- " + strings.Join(related, "\n- ")
}

// deriveRequirementTasks creates one task per requirement matching an ad
// hoc pattern: third-party integrations, performance work, and security
// work. Each derived task links back to its requirement through
// Metadata.SourceRequirement.
func deriveRequirementTasks(projectID string, reqs []Requirement, now time.Time) []Task {
	var tasks []Task

	for _, req := range reqs {
		lower := strings.ToLower(req.Description)

		if m := integrationPattern.FindStringSubmatch(req.Description); m != nil {
			priority := PriorityMedium
			if req.Priority == PriorityCritical {
				priority = PriorityHigh
			}
			tasks = append(tasks, Task{
				ID:          uuid.NewString(),
				ProjectID:   projectID,
				Type:        TaskImplementation,
				Title:       capitalize(m[1]) + " Integration",
				Description: "Integrate with " + capitalize(m[1]) + ".\n\nSource requirement: " + req.Description,
				Status:      StatusPending,
				Priority:    priority,
				Metadata: TaskMetadata{
					RequiredSkills:    []string{"backend", "api"},
					SourceRequirement: req.ID,
				},
				CreatedAt: now,
			})
		}

		if strings.Contains(lower, "performance") || strings.Contains(lower, "optimization") {
			tasks = append(tasks, Task{
				ID:          uuid.NewString(),
				ProjectID:   projectID,
				Type:        TaskImplementation,
				Title:       "Performance Optimization",
				Description: "Profile and optimize the system to meet the stated performance requirement.\n\nSource requirement: " + req.Description,
				Status:      StatusPending,
				Priority:    PriorityHigh,
				Metadata: TaskMetadata{
					RequiredSkills:    []string{"performance"},
					SourceRequirement: req.ID,
				},
				CreatedAt: now,
			})
		}

		if strings.Contains(lower, "security") || strings.Contains(lower, "encryption") || strings.Contains(lower, "compliance") {
			tasks = append(tasks, Task{
				ID:          uuid.NewString(),
				ProjectID:   projectID,
				Type:        TaskImplementation,
				Title:       "Security Implementation",
				Description: "Implement the stated security and compliance controls.\n\nSource requirement: " + req.Description,
				Status:      StatusPending,
				Priority:    PriorityCritical,
				Metadata: TaskMetadata{
					RequiredSkills:    []string{"security"},
					SourceRequirement: req.ID,
				},
				CreatedAt: now,
			})
		}
	}
	return tasks
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
