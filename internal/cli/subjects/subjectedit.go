package subjects

import (
	"fmt"
	"strings"

	"github.com/studynest/studynest/internal/cli"
)

type SubjectEditCmd struct {
	Subject string  `arg:"" help:"Subject ID or name."`
	Name    *string `help:"New subject name."`
	Hours   *int    `short:"H" help:"New hours needed."`
}

func (c *SubjectEditCmd) Run(ctx *cli.Context) error {
	subject, err := cli.FindSubject(ctx.Store, c.Subject)
	if err != nil {
		return err
	}

	if c.Name == nil && c.Hours == nil {
		return fmt.Errorf("nothing to change; use --name or --hours")
	}

	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return fmt.Errorf("subject name cannot be empty")
		}
		subject.Name = name
	}
	if c.Hours != nil {
		if *c.Hours < 1 {
			return fmt.Errorf("hours must be at least 1")
		}
		subject.Hours = *c.Hours
	}

	if err := ctx.Store.UpdateSubject(subject); err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	fmt.Printf("Updated subject: %s, %d hrs (ID: %s)\n", subject.Name, subject.Hours, subject.ID)
	return nil
}
