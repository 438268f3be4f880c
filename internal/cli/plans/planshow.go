package plans

import (
	"fmt"
	"time"

	"github.com/studynest/studynest/internal/cli"
	"github.com/studynest/studynest/internal/constants"
	"github.com/studynest/studynest/internal/models"
)

type PlanShowCmd struct {
	ID string `arg:"" optional:"" help:"Plan ID to show. Defaults to the most recent plan."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	var plan models.StudyPlan
	var err error

	if c.ID == "" {
		plan, err = ctx.Store.GetLatestPlan()
		if err != nil {
			return fmt.Errorf("no plans found; generate one with 'studynest plan'")
		}
	} else {
		plan, err = ctx.Store.GetPlan(c.ID)
		if err != nil {
			return fmt.Errorf("failed to find plan: %w", err)
		}
	}

	generated := plan.GeneratedAt
	if t, err := time.Parse(constants.TimestampFormat, plan.GeneratedAt); err == nil {
		generated = t.Local().Format("2006-01-02 15:04")
	}

	fmt.Printf("Study plan %s (generated %s, %d days, %d hrs total):\n\n",
		plan.ID, generated, plan.Days, plan.Schedule.TotalHours())
	fmt.Print(cli.FormatSchedule(plan.Schedule))
	return nil
}
