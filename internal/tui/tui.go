// Package tui implements the interactive plan browser behind
// "planweave view -i". It is read-only: the plan file is never modified
// from here.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/util"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).PaddingLeft(4)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// tab identifies the visible panel.
type tab int

const (
	tabTasks tab = iota
	tabMilestones
	tabRisks
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabTasks:
		return "Tasks"
	case tabMilestones:
		return "Milestones"
	case tabRisks:
		return "Risks"
	default:
		return "?"
	}
}

// model is the bubbletea model for the plan browser.
type model struct {
	result   *plan.Result
	active   tab
	cursor   int
	expanded bool
	width    int
	height   int
}

func newModel(result *plan.Result) model {
	return model{result: result}
}

// Run opens the interactive browser over a plan and blocks until the user
// quits.
func Run(result *plan.Result) error {
	_, err := tea.NewProgram(newModel(result), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

// rowCount returns the number of selectable rows on the active tab.
func (m model) rowCount() int {
	switch m.active {
	case tabTasks:
		return len(m.result.Tasks)
	case tabMilestones:
		return len(m.result.Milestones)
	case tabRisks:
		return len(m.result.RiskFactors)
	default:
		return 0
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % tabCount
			m.cursor = 0
			m.expanded = false
		case "shift+tab", "left", "h":
			m.active = (m.active + tabCount - 1) % tabCount
			m.cursor = 0
			m.expanded = false
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
				m.expanded = false
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.expanded = false
			}
		case "enter", " ":
			m.expanded = !m.expanded
		}
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf(
		"Plan %s  (%s, %d days)", m.result.ProjectID, m.result.ProjectType, m.result.EstimatedDays)))
	sb.WriteString("\n")

	var tabs []string
	for t := tabTasks; t < tabCount; t++ {
		style := tabStyle
		if t == m.active {
			style = activeTab
		}
		tabs = append(tabs, style.Render(t.title()))
	}
	sb.WriteString(strings.Join(tabs, " "))
	sb.WriteString("\n\n")

	switch m.active {
	case tabTasks:
		sb.WriteString(m.viewTasks())
	case tabMilestones:
		sb.WriteString(m.viewMilestones())
	case tabRisks:
		sb.WriteString(m.viewRisks())
	}

	sb.WriteString(helpStyle.Render("j/k move  tab switch  enter details  q quit"))
	return sb.String()
}

func (m model) viewTasks() string {
	if len(m.result.Tasks) == 0 {
		return dimStyle.Render("No tasks.") + "\n"
	}

	var sb strings.Builder
	for i := range m.result.Tasks {
		task := &m.result.Tasks[i]
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("[%s] %s", task.Type, task.Title)
		if task.Priority == plan.PriorityCritical {
			line = criticalStyle.Render(line)
		}
		sb.WriteString(marker + line)
		if task.HasDependencies() {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  (%d deps)", len(task.DependsOn))))
		}
		sb.WriteString("\n")

		if i == m.cursor && m.expanded {
			sb.WriteString(detailStyle.Render(util.TruncateString(task.Description, 200)))
			sb.WriteString("\n")
			if task.Metadata.EstimatedHours > 0 {
				sb.WriteString(detailStyle.Render(fmt.Sprintf("estimate: %.0fh", task.Metadata.EstimatedHours)))
				sb.WriteString("\n")
			}
			if len(task.Metadata.RequiredSkills) > 0 {
				sb.WriteString(detailStyle.Render("skills: " + strings.Join(task.Metadata.RequiredSkills, ", ")))
				sb.WriteString("\n")
			}
			for _, dep := range task.DependsOn {
				depTitle := dep
				if depTask := m.result.GetTask(dep); depTask != nil {
					depTitle = depTask.Title
				}
				sb.WriteString(detailStyle.Render("after: " + depTitle))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (m model) viewMilestones() string {
	if len(m.result.Milestones) == 0 {
		return dimStyle.Render("No milestones.") + "\n"
	}

	var sb strings.Builder
	for i := range m.result.Milestones {
		ms := &m.result.Milestones[i]
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			marker, ms.DueDate.Format("2006-01-02"), ms.Name,
			dimStyle.Render(fmt.Sprintf("%d tasks", len(ms.TaskIDs)))))

		if i == m.cursor && m.expanded {
			for _, id := range ms.TaskIDs {
				title := id
				if task := m.result.GetTask(id); task != nil {
					title = task.Title
				}
				sb.WriteString(detailStyle.Render(title))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (m model) viewRisks() string {
	if len(m.result.RiskFactors) == 0 {
		return dimStyle.Render("No identified risks.") + "\n"
	}

	var sb strings.Builder
	for i, risk := range m.result.RiskFactors {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		sb.WriteString(marker + risk + "\n")
	}
	return sb.String()
}
