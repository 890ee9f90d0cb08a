package plan

import (
	"fmt"
	"strings"
)

// textRiskRule flags a risk when any of its keywords appears in the
// source text. Keywords are matched case-insensitively as substrings, so
// padded entries like " ai " avoid matching inside larger words.
type textRiskRule struct {
	keywords []string
	risk     string
}

var textRiskRules = []textRiskRule{
	{
		keywords: []string{"real-time", "realtime"},
		risk:     "Real-time features add concurrency and infrastructure complexity",
	},
	{
		keywords: []string{"scale", "high volume", "million"},
		risk:     "Scalability requirements may need load testing and architecture review",
	},
	{
		keywords: []string{"compliance", "regulatory", "gdpr", "hipaa"},
		risk:     "Compliance requirements need legal review and audit trails",
	},
	{
		keywords: []string{"machine learning", " ai ", " ml "},
		risk:     "ML/AI features carry high uncertainty in effort estimates",
	},
}

// integrationRiskThreshold is the number of distinct integration tasks
// above which coordination risk is flagged.
const integrationRiskThreshold = 2

// criticalRatioThreshold is the share of critical-priority tasks above
// which the plan is flagged as having little slack.
const criticalRatioThreshold = 0.3

// maxHealthyDependencies is the largest direct dependency count a task
// can have before it is flagged as a bottleneck.
const maxHealthyDependencies = 3

// IdentifyRisks derives qualitative risk factors from the PRD text and
// the generated task graph. Each rule contributes at most one entry, in
// stable order, so the list is deterministic for a given input.
func IdentifyRisks(sourceText string, tasks []Task) []string {
	var risks []string
	// Padding lets the word-boundary keywords match at the text edges.
	lower := " " + strings.ToLower(sourceText) + " "

	for _, rule := range textRiskRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				risks = append(risks, rule.risk)
				break
			}
		}
	}

	// The integration risk needs the keyword in the text itself, not just
	// integration-titled tasks; template sets always ship one.
	if strings.Contains(lower, "integration") {
		integrations := 0
		for i := range tasks {
			if strings.Contains(tasks[i].Title, "Integration") {
				integrations++
			}
		}
		if integrations > integrationRiskThreshold {
			risks = append(risks, fmt.Sprintf(
				"%d third-party integrations increase coordination and failure surface", integrations))
		}
	}

	if len(tasks) > 0 {
		critical := 0
		for i := range tasks {
			if tasks[i].Priority == PriorityCritical {
				critical++
			}
		}
		if float64(critical)/float64(len(tasks)) > criticalRatioThreshold {
			risks = append(risks, "High proportion of critical tasks leaves little scheduling slack")
		}
	}

	for i := range tasks {
		if len(tasks[i].DependsOn) > maxHealthyDependencies {
			risks = append(risks, fmt.Sprintf(
				"Task %q depends on %d tasks and is a potential bottleneck",
				tasks[i].Title, len(tasks[i].DependsOn)))
		}
	}

	return risks
}
