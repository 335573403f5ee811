package cli

import (
	"time"

	"github.com/alexanderramin/semester/internal/config"
	"github.com/alexanderramin/semester/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Courses     service.CourseService
	Assignments service.AssignmentService
	Tasks       service.TaskService
	Grades      service.GradeService
	Priority    service.PriorityService
	Sync        service.SyncService
	Backup      service.BackupService

	// Config supplies command defaults. Nil means the built-in defaults.
	Config   *config.Config
	Notifier *TerminalNotifier

	// IsInteractive gates wizards and spinners. Nil means never interactive.
	IsInteractive func() bool
	Now           func() time.Time

	// Setup wires the services from the parsed global flags before any
	// command runs. Nil when the App is already wired.
	Setup func(flags *pflag.FlagSet) error
}

// GlobalFlagKeys maps the root persistent flags to configuration keys.
var GlobalFlagKeys = map[string]string{
	"db":         "db_path",
	"user":       "user_id",
	"log-level":  "log.level",
	"log-format": "log.format",
	"parallel":   "sync.parallel_courses",
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) settings() config.Config {
	if a.Config != nil {
		return *a.Config
	}
	return config.Defaults("")
}

// NewRootCmd creates the top-level "semester" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "semester",
		Short:         "Courses, grades and deadlines for one semester",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default ~/.semester/config.yaml)")
	pf.String("env-file", "", "Dotenv file (default ~/.semester/.env)")
	pf.String("db", "", "SQLite database path")
	pf.String("user", "", "User the data belongs to")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.Int("parallel", 0, "Courses reconciled in parallel during sync")

	root.AddCommand(
		newCourseCmd(app),
		newAssignmentCmd(app),
		newTaskCmd(app),
		newGradeCmd(app),
		newPanicCmd(app),
		newSurvivalCmd(app),
		newInsightsCmd(app),
		newLMSCmd(app),
		newBackupCmd(app),
		newCalendarCmd(app),
	)

	return root
}
