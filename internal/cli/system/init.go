package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studynest/studynest/internal/cli"
	"github.com/studynest/studynest/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Source storage path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		storePath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absStorePath, err := filepath.Abs(storePath)
			if err == nil {
				storePath = absStorePath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == storePath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", storePath)
			}
		}
		if _, err := os.Stat(storePath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized studynest storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	switch {
	case strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://"):
		if valid, err := storage.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = storage.NewPostgresStore(sourcePath)
	case strings.HasSuffix(sourcePath, ".json"):
		sourceStore = storage.NewJSONStore(sourcePath)
	default:
		sourceStore = storage.NewSQLiteStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	// Deleted subjects are dropped; destination stores insert active rows only.
	fmt.Println("  Migrating subjects...")
	subjects, err := sourceStore.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to get subjects from source: %w", err)
	}
	for _, subject := range subjects {
		if err := ctx.Store.AddSubject(subject); err != nil {
			return fmt.Errorf("failed to add subject %s: %w", subject.ID, err)
		}
	}
	fmt.Printf("    Migrated %d subjects\n", len(subjects))

	fmt.Println("  Migrating plans...")
	plans, err := sourceStore.GetAllPlans()
	if err != nil {
		return fmt.Errorf("failed to get plans from source: %w", err)
	}
	for _, plan := range plans {
		if err := ctx.Store.SavePlan(plan); err != nil {
			return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
		}
	}
	fmt.Printf("    Migrated %d plans\n", len(plans))

	return nil
}
