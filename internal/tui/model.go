package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/studynest/studynest/internal/models"
	"github.com/studynest/studynest/internal/planner"
	"github.com/studynest/studynest/internal/storage"
	"github.com/studynest/studynest/internal/validation"
)

type SessionState int

const (
	StateSubjects SessionState = iota
	StatePlan
	StateEditing
	StateConfirmDelete
)

// tabCount covers the cycling tabs only; form and confirm states overlay them.
const tabCount = 2

type SubjectFormModel struct {
	Name  string
	Hours string
}

type Model struct {
	store         storage.Provider
	planner       *planner.Planner
	state         SessionState
	keys          KeyMap
	help          help.Model
	subjects      []models.Subject
	cursor        int
	schedule      models.Schedule
	scheduleDays  int
	scheduleSaved bool

	form            *huh.Form
	subjectForm     *SubjectFormModel
	editingSubject  *models.Subject
	subjectToDelete string
	formError       string

	validationWarning   string
	validationConflicts []validation.Conflict
	statusMessage       string

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, p *planner.Planner) Model {
	subjects, err := store.GetAllSubjects()
	if err != nil {
		subjects = []models.Subject{}
	}

	m := Model{
		store:    store,
		planner:  p,
		state:    StateSubjects,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		subjects: subjects,
	}

	// Run validation on initialization
	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateSubjects:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Generate)
	case StatePlan:
		keys = append(keys, m.keys.Generate, m.keys.Save)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateSubjects:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Generate}
	case StatePlan:
		actions = []key.Binding{m.keys.Generate, m.keys.Save}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshSubjects reloads the catalog and clamps the cursor.
func (m *Model) refreshSubjects() {
	subjects, err := m.store.GetAllSubjects()
	if err != nil {
		return
	}
	m.subjects = subjects
	if m.cursor >= len(m.subjects) {
		m.cursor = len(m.subjects) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		m.validationConflicts = nil
		return
	}

	validator := validation.New()
	result := validator.ValidateSubjects(m.subjects, settings)
	m.validationConflicts = result.Conflicts

	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

// newSubjectForm builds the add/edit form bound to m.subjectForm.
func (m *Model) newSubjectForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.subjectForm.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Hours needed").
				Value(&m.subjectForm.Hours).
				Validate(validatePositiveInt),
		).Title(title),
	)
}
