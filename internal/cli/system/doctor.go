package system

import (
	"fmt"
	"time"

	"github.com/studynest/studynest/internal/backup"
	"github.com/studynest/studynest/internal/cli"
	"github.com/studynest/studynest/internal/keyring"
	"github.com/studynest/studynest/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: storage reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeReachable = true
	}

	// Check 2: settings sane (only if storage is reachable)
	if storeReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (storage not reachable)\n")
	}

	// Check 3: subject catalog integrity (only if storage is reachable)
	if storeReachable {
		if err := checkSubjectIntegrity(ctx); err != nil {
			fmt.Printf("❌ Subject integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Subject integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Subject integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 4: plan hour conservation (only if storage is reachable)
	if storeReachable {
		if err := checkPlanIntegrity(ctx); err != nil {
			fmt.Printf("❌ Plan integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Plan integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Plan integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 5: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 6: keyring availability (warning only, needed for PostgreSQL)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; PostgreSQL credentials must come from the environment\n")
	}

	// Check 7: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.DefaultDays < 1 {
		return fmt.Errorf("default-days is %d, must be at least 1", settings.DefaultDays)
	}
	if settings.MaxSubjects < 0 {
		return fmt.Errorf("max-subjects is %d, cannot be negative", settings.MaxSubjects)
	}
	return nil
}

func checkSubjectIntegrity(ctx *cli.Context) error {
	subjects, err := ctx.Store.GetAllSubjectsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}

	seen := make(map[string]bool)
	for _, sub := range subjects {
		if seen[sub.ID] {
			return fmt.Errorf("duplicate subject ID found: %s", sub.ID)
		}
		seen[sub.ID] = true

		if sub.DeletedAt == nil && sub.Hours < 1 {
			return fmt.Errorf("subject %q has %d hours, must be at least 1", sub.Name, sub.Hours)
		}
	}
	return nil
}

// checkPlanIntegrity verifies that every saved plan schedules exactly the
// hours its subject snapshot asked for.
func checkPlanIntegrity(ctx *cli.Context) error {
	plans, err := ctx.Store.GetAllPlans()
	if err != nil {
		return fmt.Errorf("failed to get plans: %w", err)
	}

	for _, plan := range plans {
		wanted := 0
		for _, sub := range plan.Subjects {
			wanted += sub.Hours
		}
		scheduled := plan.Schedule.TotalHours()
		if scheduled != wanted {
			return fmt.Errorf("plan %s schedules %d hrs but its subjects need %d hrs", plan.ID, scheduled, wanted)
		}
		if len(plan.Schedule) != plan.Days {
			return fmt.Errorf("plan %s has %d day entries but was generated for %d days", plan.ID, len(plan.Schedule), plan.Days)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'studynest backup create'")
	}

	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
