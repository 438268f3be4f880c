package settings

import (
	"fmt"

	"github.com/studynest/studynest/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DefaultDays *int `help:"Default number of days for generated plans."`
	MaxSubjects *int `help:"Maximum number of active subjects (0 disables the limit)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Default Days: %d\n", settings.DefaultDays)
		fmt.Printf("  Max Subjects: %d\n", settings.MaxSubjects)
		return nil
	}

	updated := false
	if c.DefaultDays != nil {
		if *c.DefaultDays < 1 {
			return fmt.Errorf("default-days must be at least 1")
		}
		settings.DefaultDays = *c.DefaultDays
		updated = true
	}
	if c.MaxSubjects != nil {
		if *c.MaxSubjects < 0 {
			return fmt.Errorf("max-subjects cannot be negative")
		}
		settings.MaxSubjects = *c.MaxSubjects
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
