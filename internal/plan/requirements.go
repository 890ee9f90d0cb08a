package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planweave/planweave/internal/util"
)

// priorityRule maps trigger keywords to a priority. Rules are evaluated in
// order with case-insensitive substring matching; the first match wins.
type priorityRule struct {
	keywords []string
	priority Priority
}

var priorityRules = []priorityRule{
	{[]string{"must", "critical", "essential"}, PriorityCritical},
	{[]string{"should", "important", "high priority"}, PriorityHigh},
	{[]string{"could", "nice to have", "low priority"}, PriorityLow},
}

// DetectPriority classifies a requirement description lexically.
// Descriptions matching no rule default to medium.
func DetectPriority(description string) Priority {
	lower := strings.ToLower(description)
	for _, rule := range priorityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.priority
			}
		}
	}
	return PriorityMedium
}

// reqTitleMax caps the derived portion of a requirement title.
const reqTitleMax = 50

// requirementTitle derives a short title from an item: the first sentence
// if one is terminated within the text, clipped to 50 characters either way.
func requirementTitle(item string) string {
	title := item
	if idx := strings.IndexAny(item, ".!?"); idx >= 0 {
		title = item[:idx]
	}
	return util.ClipString(strings.TrimSpace(title), reqTitleMax)
}

// ExtractRequirements converts the list items of requirement-bearing
// sections into typed, prioritized Requirement records.
//
// Items in user-story sections become user-story requirements; items in
// requirements and acceptance-criteria sections become functional
// requirements; items in technical sections become technical requirements
// with priority forced to high. The REQ-/TECH- numbering shares a single
// counter scoped to this call, so concurrent decompositions never interact.
func ExtractRequirements(projectID string, sections []Section, now time.Time) []Requirement {
	var reqs []Requirement
	counter := 0

	for _, section := range sections {
		var reqType RequirementType
		switch section.Type {
		case SectionRequirements, SectionAcceptanceCriteria:
			reqType = RequirementFunctional
		case SectionUserStories:
			reqType = RequirementUserStory
		case SectionTechnical:
			reqType = RequirementTechnical
		default:
			continue
		}

		for _, item := range ExtractListItems(section.Content) {
			counter++

			prefix := "REQ"
			priority := DetectPriority(item)
			if reqType == RequirementTechnical {
				prefix = "TECH"
				priority = PriorityHigh
			}

			reqs = append(reqs, Requirement{
				ID:          uuid.NewString(),
				ProjectID:   projectID,
				Type:        reqType,
				Title:       fmt.Sprintf("%s-%d: %s", prefix, counter, requirementTitle(item)),
				Description: item,
				Priority:    priority,
				Status:      StatusPending,
				CreatedAt:   now,
			})
		}
	}
	return reqs
}
