package planner

import (
	"errors"

	"github.com/studynest/studynest/internal/models"
)

// ErrInvalidDayCount is returned when a schedule is requested for fewer than
// one day. It comes from ordinary user input, so callers should treat it as
// a message to display rather than a fault.
var ErrInvalidDayCount = errors.New("Number of days must be at least 1.")

type Planner struct{}

func New() *Planner {
	return &Planner{}
}

// Generate allocates each subject's hours across the requested number of
// days using greedy bin-packing: days are filled in order from a per-day
// hour budget, consuming subjects in input order. Hours that the budget
// under-allocates are appended to the last day as an adjusted entry, so the
// schedule always accounts for every input hour.
//
// The subjects slice is never mutated; remaining hours are tracked in a
// private copy, so Generate is safe to call concurrently with shared inputs.
func (p *Planner) Generate(subjects []models.Subject, days int) (models.Schedule, error) {
	if days <= 0 {
		return nil, ErrInvalidDayCount
	}

	totalHours := 0
	for _, sub := range subjects {
		totalHours += sub.Hours
	}

	hoursPerDay := 0
	if totalHours > 0 {
		hoursPerDay = totalHours / days
		if hoursPerDay < 1 {
			hoursPerDay = 1
		}
	}

	// Private working copy of each subject's remaining hours
	remaining := make([]int, len(subjects))
	for i, sub := range subjects {
		remaining[i] = sub.Hours
	}

	schedule := make(models.Schedule, 0, days)
	current := 0

	for day := 1; day <= days; day++ {
		entries := []models.Assignment{}

		assignedToday := 0
		for assignedToday < hoursPerDay && current < len(subjects) {
			hours := remaining[current]
			if budget := hoursPerDay - assignedToday; hours > budget {
				hours = budget
			}

			entries = append(entries, models.Assignment{
				Subject: subjects[current].Name,
				Hours:   hours,
			})

			remaining[current] -= hours
			assignedToday += hours

			if remaining[current] <= 0 {
				current++
			}
		}

		schedule = append(schedule, models.DayAssignments{Day: day, Entries: entries})
	}

	// Integer division can under-allocate the per-day budget, leaving hours
	// unplaced after the last day. Fold them into the last day so no input
	// hour is ever dropped.
	leftover := 0
	for i := current; i < len(subjects); i++ {
		leftover += remaining[i]
	}
	if leftover > 0 {
		last := len(schedule) - 1
		schedule[last].Entries = append(schedule[last].Entries, models.Assignment{
			Subject:  models.RemainingLabel,
			Hours:    leftover,
			Adjusted: true,
		})
	}

	return schedule, nil
}
