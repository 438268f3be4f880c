package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/studynest/studynest/internal/constants"
	"github.com/studynest/studynest/internal/models"
)

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Editing State
	if m.state == StateEditing {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateSubjects
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.editingSubject.Name = strings.TrimSpace(m.subjectForm.Name)
			hours, err := strconv.Atoi(strings.TrimSpace(m.subjectForm.Hours))
			if err == nil {
				m.editingSubject.Hours = hours
			}

			// Check if subject exists to decide Add vs Update
			_, err = m.store.GetSubject(m.editingSubject.ID)
			var saveErr error
			if err != nil {
				saveErr = m.store.AddSubject(*m.editingSubject)
			} else {
				saveErr = m.store.UpdateSubject(*m.editingSubject)
			}

			if saveErr == nil {
				m.refreshSubjects()
				m.updateValidationStatus()
				m.formError = ""
				m.state = StateSubjects
			} else {
				// Stay in the form on error so the user can retry or cancel
				m.formError = fmt.Sprintf("Failed to save subject: %v", saveErr)
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.state = StateSubjects
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.DeleteSubject(m.subjectToDelete); err != nil {
					m.statusMessage = fmt.Sprintf("Delete failed: %v", err)
				} else {
					m.statusMessage = "Subject deleted"
					m.refreshSubjects()
					m.updateValidationStatus()
				}
				m.state = StateSubjects
			case "n", "N", "esc", "q":
				m.state = StateSubjects
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.statusMessage = ""

		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.statusMessage = ""

		case key.Matches(msg, m.keys.Up):
			if m.state == StateSubjects && m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.state == StateSubjects && m.cursor < len(m.subjects)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Add):
			if m.state == StateSubjects {
				m.subjectForm = &SubjectFormModel{}
				m.editingSubject = &models.Subject{ID: uuid.New().String()}
				m.form = m.newSubjectForm("Add Subject")
				m.state = StateEditing
				return m, m.form.Init()
			}

		case key.Matches(msg, m.keys.Edit):
			if m.state == StateSubjects && len(m.subjects) > 0 {
				subject := m.subjects[m.cursor]
				m.subjectForm = &SubjectFormModel{
					Name:  subject.Name,
					Hours: strconv.Itoa(subject.Hours),
				}
				m.editingSubject = &subject
				m.form = m.newSubjectForm("Edit Subject")
				m.state = StateEditing
				return m, m.form.Init()
			}

		case key.Matches(msg, m.keys.Delete):
			if m.state == StateSubjects && len(m.subjects) > 0 {
				m.subjectToDelete = m.subjects[m.cursor].ID
				m.state = StateConfirmDelete
			}

		case key.Matches(msg, m.keys.Generate):
			m.generatePlan()

		case key.Matches(msg, m.keys.Save):
			if m.state == StatePlan {
				m.savePlan()
			}
		}
	}

	return m, nil
}

func (m *Model) generatePlan() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.statusMessage = fmt.Sprintf("Failed to get settings: %v", err)
		return
	}

	schedule, err := m.planner.Generate(m.subjects, settings.DefaultDays)
	if err != nil {
		m.statusMessage = err.Error()
		return
	}

	m.schedule = schedule
	m.scheduleDays = settings.DefaultDays
	m.scheduleSaved = false
	m.statusMessage = fmt.Sprintf("Generated a %d-day plan; press s to save it", settings.DefaultDays)
	m.state = StatePlan
}

func (m *Model) savePlan() {
	if m.schedule == nil {
		m.statusMessage = "Nothing to save; press g to generate a plan first"
		return
	}
	if m.scheduleSaved {
		m.statusMessage = "Plan already saved"
		return
	}

	plan := models.StudyPlan{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC().Format(constants.TimestampFormat),
		Days:        m.scheduleDays,
		Subjects:    m.subjects,
		Schedule:    m.schedule,
	}

	if err := m.store.SavePlan(plan); err != nil {
		m.statusMessage = fmt.Sprintf("Failed to save plan: %v", err)
		return
	}

	m.scheduleSaved = true
	m.statusMessage = fmt.Sprintf("Plan saved (ID: %s)", plan.ID)
}
