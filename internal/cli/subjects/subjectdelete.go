package subjects

import (
	"fmt"

	"github.com/studynest/studynest/internal/cli"
)

type SubjectDeleteCmd struct {
	Subject string `arg:"" help:"Subject ID or name to delete."`
}

func (c *SubjectDeleteCmd) Run(ctx *cli.Context) error {
	subject, err := cli.FindSubject(ctx.Store, c.Subject)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteSubject(subject.ID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	fmt.Printf("Deleted subject: %s (ID: %s)\n", subject.Name, subject.ID)
	return nil
}
