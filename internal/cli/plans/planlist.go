package plans

import (
	"fmt"
	"time"

	"github.com/studynest/studynest/internal/cli"
	"github.com/studynest/studynest/internal/constants"
)

type PlanListCmd struct{}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	plans, err := ctx.Store.GetAllPlans()
	if err != nil {
		return fmt.Errorf("failed to get plans: %w", err)
	}

	if len(plans) == 0 {
		fmt.Println("No plans found. Generate one with 'studynest plan'.")
		return nil
	}

	fmt.Println("Saved plans (newest first):")
	for _, plan := range plans {
		generated := plan.GeneratedAt
		if t, err := time.Parse(constants.TimestampFormat, plan.GeneratedAt); err == nil {
			generated = t.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s  %2d days  %3d hrs  (ID: %s)\n",
			generated, plan.Days, plan.Schedule.TotalHours(), plan.ID)
	}
	return nil
}
