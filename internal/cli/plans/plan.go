package plans

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studynest/studynest/internal/cli"
	"github.com/studynest/studynest/internal/constants"
	"github.com/studynest/studynest/internal/models"
	"github.com/studynest/studynest/internal/validation"
)

type PlanCmd struct {
	Days int  `short:"d" help:"Number of days to spread the plan over. Defaults to the default-days setting."`
	Save bool `help:"Save the plan without asking for confirmation."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on plan invocation (after successful load)
	ctx.PerformAutomaticBackup()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	days := c.Days
	if days == 0 {
		days = settings.DefaultDays
	}

	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}

	validator := validation.New()
	result := validator.ValidateSubjects(subjects, settings)

	schedule, err := ctx.Planner.Generate(subjects, days)
	if err != nil {
		return err
	}

	fmt.Printf("Proposed study plan over %d days:\n\n", days)
	fmt.Print(cli.FormatSchedule(schedule))

	if result.HasConflicts() {
		fmt.Println("\n⚠️  Validation warnings:")
		for _, conflict := range result.Conflicts {
			fmt.Printf("  - %s\n", conflict.Description)
		}
	}

	save := c.Save
	if !save {
		fmt.Println()
		save, err = cli.Confirm("Save this plan?")
		if err != nil {
			return err
		}
	}

	if !save {
		fmt.Println("Plan discarded. You can modify subjects and regenerate.")
		return nil
	}

	plan := models.StudyPlan{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC().Format(constants.TimestampFormat),
		Days:        days,
		Subjects:    subjects,
		Schedule:    schedule,
	}

	if err := ctx.Store.SavePlan(plan); err != nil {
		return err
	}

	fmt.Printf("Plan saved (ID: %s)\n", plan.ID)
	return nil
}
