package plans

import (
	"fmt"

	"github.com/studynest/studynest/internal/cli"
)

type PlanRestoreCmd struct {
	ID string `arg:"" help:"Plan ID to restore."`
}

func (c *PlanRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestorePlan(c.ID); err != nil {
		return fmt.Errorf("failed to restore plan: %w", err)
	}

	fmt.Printf("Restored plan with ID: %s\n", c.ID)
	return nil
}
