package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/util"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	riskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// priorityStyles colors task priorities in summaries.
var priorityStyles = map[plan.Priority]lipgloss.Style{
	plan.PriorityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	plan.PriorityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	plan.PriorityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	plan.PriorityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// renderSummary formats a plan overview for the terminal.
func renderSummary(result *plan.Result) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Plan for project %s", result.ProjectID)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Type: "))
	sb.WriteString(result.ProjectType.String())
	sb.WriteString(labelStyle.Render("  Estimated: "))
	sb.WriteString(fmt.Sprintf("%d days", result.EstimatedDays))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Requirements (%d)", len(result.Requirements))))
	sb.WriteString("\n")
	for _, req := range result.Requirements {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			renderPriority(req.Priority), util.TruncateString(req.Title, 70)))
	}

	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Tasks (%d)", result.TaskCount())))
	sb.WriteString("\n")
	for i := range result.Tasks {
		task := &result.Tasks[i]
		deps := ""
		if task.HasDependencies() {
			deps = labelStyle.Render(fmt.Sprintf(" (%d deps)", len(task.DependsOn)))
		}
		sb.WriteString(fmt.Sprintf("  %s [%s] %s%s\n",
			renderPriority(task.Priority), task.Type, task.Title, deps))
	}

	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Milestones (%d)", len(result.Milestones))))
	sb.WriteString("\n")
	for _, ms := range result.Milestones {
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			ms.DueDate.Format("2006-01-02"), ms.Name,
			labelStyle.Render(fmt.Sprintf("%d tasks", len(ms.TaskIDs)))))
	}

	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Execution order (%d stages)", len(result.ExecutionOrder))))
	sb.WriteString("\n")
	for i, batch := range result.ExecutionOrder {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, strings.Join(stageTitles(result, batch), ", ")))
	}

	if len(result.RiskFactors) > 0 {
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("Risks (%d)", len(result.RiskFactors))))
		sb.WriteString("\n")
		for _, risk := range result.RiskFactors {
			sb.WriteString("  " + riskStyle.Render("!") + " " + risk + "\n")
		}
	}

	if len(result.Warnings) > 0 {
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("Warnings (%d)", len(result.Warnings))))
		sb.WriteString("\n")
		for _, warning := range result.Warnings {
			sb.WriteString("  " + warnStyle.Render(warning) + "\n")
		}
	}

	return sb.String()
}

// renderPriority returns a colored fixed-width priority tag.
func renderPriority(priority plan.Priority) string {
	style, ok := priorityStyles[priority]
	if !ok {
		style = labelStyle
	}
	return style.Render(fmt.Sprintf("%-8s", priority))
}

// stageTitles resolves a batch of task IDs to titles, keeping unknown IDs
// as-is so a malformed plan still renders.
func stageTitles(result *plan.Result, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if task := result.GetTask(id); task != nil {
			out[i] = task.Title
		} else {
			out[i] = id
		}
	}
	return out
}
