package plans

import (
	"fmt"

	"github.com/studynest/studynest/internal/cli"
)

type PlanDeleteCmd struct {
	ID string `arg:"" help:"Plan ID to delete."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeletePlan(c.ID); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	fmt.Printf("Deleted plan with ID: %s\n", c.ID)
	return nil
}
