package subjects

import (
	"fmt"

	"github.com/studynest/studynest/internal/cli"
)

type SubjectRestoreCmd struct {
	ID string `arg:"" help:"Subject ID to restore."`
}

func (c *SubjectRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreSubject(c.ID); err != nil {
		return fmt.Errorf("failed to restore subject: %w", err)
	}

	fmt.Printf("Restored subject with ID: %s\n", c.ID)
	return nil
}
