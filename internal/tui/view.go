package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateSubjects:
		content = docStyle.Render(m.viewSubjects())
	case StatePlan:
		content = docStyle.Render(m.viewPlan())
	case StateEditing:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.validationWarning != "" {
		sections = append(sections, warningStyle.Render(m.validationWarning))
	}
	if m.statusMessage != "" {
		sections = append(sections, statusStyle.Render(m.statusMessage))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Subjects", "Plan"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSubjects() string {
	if len(m.subjects) == 0 {
		return "No subjects yet. Press a to add one."
	}

	var b strings.Builder
	total := 0
	for i, sub := range m.subjects {
		line := fmt.Sprintf("%-20s %3d hrs", sub.Name, sub.Hours)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		total += sub.Hours
	}
	b.WriteString(fmt.Sprintf("\nTotal: %d hrs", total))
	return b.String()
}

func (m Model) viewPlan() string {
	if m.schedule == nil {
		return "No plan generated yet. Press g to generate one."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Study plan over %d days (%d hrs total):\n\n", m.scheduleDays, m.schedule.TotalHours())
	for _, day := range m.schedule {
		fmt.Fprintf(&b, "Day %d:\n", day.Day)
		if len(day.Entries) == 0 {
			b.WriteString("  (free)\n")
			continue
		}
		for _, entry := range day.Entries {
			label := entry.Label()
			if entry.Adjusted {
				label = adjustedStyle.Render(label)
			}
			b.WriteString("  " + label + "\n")
		}
	}
	return b.String()
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return view
}

func (m Model) viewConfirmDelete() string {
	name := m.subjectToDelete
	for _, sub := range m.subjects {
		if sub.ID == m.subjectToDelete {
			name = sub.Name
			break
		}
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete subject %q?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
