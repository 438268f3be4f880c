package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/studynest/studynest/internal/backup"
	"github.com/studynest/studynest/internal/logger"
	"github.com/studynest/studynest/internal/models"
	"github.com/studynest/studynest/internal/planner"
	"github.com/studynest/studynest/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Planner *planner.Planner
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm prints a [y/N] prompt and reads the response from stdin.
func Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// FormatSchedule renders a schedule as the day-by-day listing shown after
// plan generation and by the plan show command.
func FormatSchedule(schedule models.Schedule) string {
	var b strings.Builder
	for _, day := range schedule {
		fmt.Fprintf(&b, "Day %d:\n", day.Day)
		if len(day.Entries) == 0 {
			b.WriteString("  (free)\n")
			continue
		}
		for _, entry := range day.Entries {
			fmt.Fprintf(&b, "  %s\n", entry.Label())
		}
	}
	return b.String()
}

// FindSubject resolves a subject reference that may be an ID or a name.
// Name matching is case-insensitive and only considers active subjects.
func FindSubject(store storage.Provider, ref string) (models.Subject, error) {
	if sub, err := store.GetSubject(ref); err == nil {
		return sub, nil
	}

	subjects, err := store.GetAllSubjects()
	if err != nil {
		return models.Subject{}, err
	}
	for _, sub := range subjects {
		if strings.EqualFold(sub.Name, ref) {
			return sub, nil
		}
	}
	return models.Subject{}, fmt.Errorf("subject not found: %s", ref)
}
