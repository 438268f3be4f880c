package subjects

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/studynest/studynest/internal/cli"
	"github.com/studynest/studynest/internal/models"
)

type SubjectAddCmd struct {
	Name  string `arg:"" help:"Subject name."`
	Hours int    `arg:"" help:"Hours of study needed."`
}

func (c *SubjectAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("subject name cannot be empty")
	}
	if c.Hours < 1 {
		return fmt.Errorf("hours must be at least 1")
	}
	return nil
}

func (c *SubjectAddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	existing, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}

	if settings.MaxSubjects > 0 && len(existing) >= settings.MaxSubjects {
		return fmt.Errorf("subject limit reached (%d); delete a subject or raise max-subjects", settings.MaxSubjects)
	}
	for _, sub := range existing {
		if strings.EqualFold(sub.Name, c.Name) {
			return fmt.Errorf("subject %q already exists (ID: %s)", sub.Name, sub.ID)
		}
	}

	subject := models.Subject{
		ID:    uuid.New().String(),
		Name:  strings.TrimSpace(c.Name),
		Hours: c.Hours,
	}

	if err := ctx.Store.AddSubject(subject); err != nil {
		return err
	}

	fmt.Printf("Added subject: %s, %d hrs (ID: %s)\n", subject.Name, subject.Hours, subject.ID)
	return nil
}
