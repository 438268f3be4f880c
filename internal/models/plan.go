package models

import "fmt"

// RemainingLabel is the pseudo-subject name used for leftover hours that the
// per-day budget could not place.
const RemainingLabel = "Remaining Subjects"

// Assignment is one chunk of study hours placed on a day.
type Assignment struct {
	Subject  string `json:"subject"`
	Hours    int    `json:"hours"`
	Adjusted bool   `json:"adjusted,omitempty"`
}

// Label renders the assignment the way plans display it, e.g. "Math - 5 hrs"
// or "Remaining Subjects - 2 hrs (Adjusted)".
func (a Assignment) Label() string {
	if a.Adjusted {
		return fmt.Sprintf("%s - %d hrs (Adjusted)", a.Subject, a.Hours)
	}
	return fmt.Sprintf("%s - %d hrs", a.Subject, a.Hours)
}

// DayAssignments holds the assignments for a single day of a schedule.
// Day is 1-based. Entries may be empty when all subjects were exhausted
// before the day was reached.
type DayAssignments struct {
	Day     int          `json:"day"`
	Entries []Assignment `json:"entries"`
}

// Schedule is a full day-by-day allocation, one element per requested day.
type Schedule []DayAssignments

// TotalHours returns the sum of hours across all assignments in the schedule.
func (s Schedule) TotalHours() int {
	total := 0
	for _, day := range s {
		for _, entry := range day.Entries {
			total += entry.Hours
		}
	}
	return total
}

// StudyPlan is a persisted plan: the subjects and day count it was generated
// from, plus the resulting schedule.
type StudyPlan struct {
	ID          string    `json:"id"`
	GeneratedAt string    `json:"generated_at"` // RFC3339 timestamp
	Days        int       `json:"days"`
	Subjects    []Subject `json:"subjects"`
	Schedule    Schedule  `json:"schedule"`
	DeletedAt   *string   `json:"deleted_at,omitempty"` // RFC3339 timestamp
}
