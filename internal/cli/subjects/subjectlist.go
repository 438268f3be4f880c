package subjects

import (
	"fmt"

	"github.com/studynest/studynest/internal/cli"
)

type SubjectListCmd struct {
	All bool `help:"Include deleted subjects."`
}

func (c *SubjectListCmd) Run(ctx *cli.Context) error {
	subjects, err := ctx.Store.GetAllSubjects()
	if c.All {
		subjects, err = ctx.Store.GetAllSubjectsIncludingDeleted()
	}
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}

	if len(subjects) == 0 {
		fmt.Println("No subjects found. Add one with 'studynest subject add'.")
		return nil
	}

	total := 0
	fmt.Println("Subjects:")
	for _, sub := range subjects {
		marker := ""
		if sub.DeletedAt != nil {
			marker = "  (deleted)"
		} else {
			total += sub.Hours
		}
		fmt.Printf("  %-20s %3d hrs%s  (ID: %s)\n", sub.Name, sub.Hours, marker, sub.ID)
	}
	fmt.Printf("\nTotal: %d hrs\n", total)
	return nil
}
