package plan

import (
	"strings"
	"testing"
	"time"
)

func TestDetectPriority(t *testing.T) {
	tests := []struct {
		description string
		want        Priority
	}{
		{"Users must be able to log in", PriorityCritical},
		{"This feature is critical for launch", PriorityCritical},
		{"Search is essential", PriorityCritical},
		{"The app should support dark mode", PriorityHigh},
		{"Fast exports are important", PriorityHigh},
		{"High priority: audit logging", PriorityHigh},
		{"We could add emoji reactions", PriorityLow},
		{"Nice to have: custom themes", PriorityLow},
		{"Low priority cleanup of old records", PriorityLow},
		{"Users can filter by date", PriorityMedium},
		{"MUST support SSO", PriorityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := DetectPriority(tt.description); got != tt.want {
				t.Errorf("DetectPriority(%q) = %s, want %s", tt.description, got, tt.want)
			}
		})
	}
}

func TestExtractRequirements(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sections := []Section{
		{Type: SectionOverview, Content: "- ignored overview bullet"},
		{Type: SectionRequirements, Content: "- Users must create projects\n- Search could be fuzzy"},
		{Type: SectionUserStories, Content: "- As an admin, I want usage reports"},
		{Type: SectionTechnical, Content: "- Could run on a single PostgreSQL instance"},
	}

	reqs := ExtractRequirements("proj-1", sections, now)
	if len(reqs) != 4 {
		t.Fatalf("got %d requirements, want 4", len(reqs))
	}

	if !strings.HasPrefix(reqs[0].Title, "REQ-1: ") {
		t.Errorf("first title = %q, want REQ-1 prefix", reqs[0].Title)
	}
	if reqs[0].Type != RequirementFunctional || reqs[0].Priority != PriorityCritical {
		t.Errorf("first requirement = %s/%s, want functional/critical", reqs[0].Type, reqs[0].Priority)
	}
	if reqs[1].Priority != PriorityLow {
		t.Errorf("second priority = %s, want low", reqs[1].Priority)
	}

	if reqs[2].Type != RequirementUserStory || !strings.HasPrefix(reqs[2].Title, "REQ-3: ") {
		t.Errorf("user story = %s %q", reqs[2].Type, reqs[2].Title)
	}

	// Technical requirements share the counter, switch prefix, and force
	// priority to high regardless of keywords.
	if !strings.HasPrefix(reqs[3].Title, "TECH-4: ") {
		t.Errorf("technical title = %q, want TECH-4 prefix", reqs[3].Title)
	}
	if reqs[3].Type != RequirementTechnical || reqs[3].Priority != PriorityHigh {
		t.Errorf("technical requirement = %s/%s, want technical/high", reqs[3].Type, reqs[3].Priority)
	}

	for i, req := range reqs {
		if req.ID == "" || len(req.ID) != 36 {
			t.Errorf("requirement %d: id %q is not a uuid", i, req.ID)
		}
		if req.ProjectID != "proj-1" {
			t.Errorf("requirement %d: project id %q", i, req.ProjectID)
		}
		if req.Status != StatusPending {
			t.Errorf("requirement %d: status %q, want pending", i, req.Status)
		}
		if !req.CreatedAt.Equal(now) {
			t.Errorf("requirement %d: created at %v", i, req.CreatedAt)
		}
	}
}

func TestRequirementTitle(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{"first sentence", "Users must log in. They may use SSO.", "Users must log in"},
		{"question mark", "Should exports stream? Yes", "Should exports stream"},
		{"no terminator short", "Simple item", "Simple item"},
		{
			"no terminator long",
			"An extremely long requirement description that keeps going well past the cap",
			"An extremely long requirement description that kee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requirementTitle(tt.item)
			if got != tt.want {
				t.Errorf("requirementTitle(%q) = %q, want %q", tt.item, got, tt.want)
			}
			if len([]rune(got)) > reqTitleMax {
				t.Errorf("title %q exceeds %d chars", got, reqTitleMax)
			}
		})
	}
}
