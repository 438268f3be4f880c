package validation

import (
	"fmt"

	"github.com/studynest/studynest/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptySubjectName     ConflictType = "empty_subject_name"
	ConflictNonPositiveHours     ConflictType = "non_positive_hours"
	ConflictDuplicateSubjectName ConflictType = "duplicate_subject_name"
	ConflictCatalogTooLarge      ConflictType = "catalog_too_large"
)

// Conflict represents a detected conflict in the subject catalog
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Subject names involved
	SubjectIDs  []string // IDs of subjects involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates the subject catalog before plan generation
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSubjects checks the catalog for conditions that would make a
// generated plan meaningless: empty names, hours below 1, duplicate names,
// and a catalog larger than the configured maximum.
func (v *Validator) ValidateSubjects(subjects []models.Subject, settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	active := 0
	nameCount := make(map[string][]string)
	for _, sub := range subjects {
		if sub.DeletedAt != nil {
			continue
		}
		active++

		if sub.Name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptySubjectName,
				Description: fmt.Sprintf("Subject %s has an empty name", sub.ID),
				SubjectIDs:  []string{sub.ID},
			})
		} else {
			nameCount[sub.Name] = append(nameCount[sub.Name], sub.ID)
		}

		if sub.Hours < 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNonPositiveHours,
				Description: fmt.Sprintf("Subject \"%s\" needs at least 1 hour, has %d", sub.Name, sub.Hours),
				Items:       []string{sub.Name},
				SubjectIDs:  []string{sub.ID},
			})
		}
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSubjectName,
				Description: fmt.Sprintf("Duplicate subject name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				SubjectIDs:  ids,
			})
		}
	}

	if settings.MaxSubjects > 0 && active > settings.MaxSubjects {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictCatalogTooLarge,
			Description: fmt.Sprintf("Catalog has %d subjects, maximum is %d", active, settings.MaxSubjects),
		})
	}

	return result
}
