package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/semester/internal/cli"
	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/config"
	"github.com/alexanderramin/semester/internal/db"
	"github.com/alexanderramin/semester/internal/lms"
	"github.com/alexanderramin/semester/internal/notify"
	"github.com/alexanderramin/semester/internal/reconcile"
	"github.com/alexanderramin/semester/internal/repository"
	"github.com/alexanderramin/semester/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", formatter.StyleRed.Render("Error:"), err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		Notifier: cli.NewTerminalNotifier(os.Stderr),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Setup = func(flags *pflag.FlagSet) error {
		configFile, _ := flags.GetString("config")
		envFile, _ := flags.GetString("env-file")
		cfg, err := config.Load(config.Options{
			ConfigFile: configFile,
			EnvFile:    envFile,
			Flags:      flags,
			FlagKeys:   cli.GlobalFlagKeys,
		})
		if err != nil {
			return err
		}
		logger := cfg.NewLogger(os.Stderr)

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		courseRepo := repository.NewSQLiteCourseRepo(database)
		assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
		taskRepo := repository.NewSQLiteTaskRepo(database)
		connectionRepo := repository.NewSQLiteConnectionRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)

		// Wire the LMS providers and the reconcile engine
		var lmsObserver lms.Observer = lms.NoopObserver{}
		if cfg.LMS.LogCalls {
			lmsObserver = lms.NewLogObserver(logger)
		}
		router := lms.NewRouter(
			lms.NewCanvasClient(cfg.LMSClientConfig(), lmsObserver),
			lms.NewSimulatedProvider(nil),
		)
		logNotifier := notify.NewLogNotifier(logger)
		engine := reconcile.NewEngine(router, repository.NewSyncStore(database),
			reconcile.WithNotifier(notify.NewMulti(logNotifier, app.Notifier)),
			reconcile.WithLogger(logger),
			reconcile.WithParallelism(cfg.Sync.ParallelCourses),
		)

		// Wire services
		observer := service.NewLogUseCaseObserver(logger)
		user := cfg.UserID
		app.Courses = service.NewCourseService(user, courseRepo, assignmentRepo, uow, observer)
		app.Assignments = service.NewAssignmentService(user, assignmentRepo, courseRepo)
		app.Tasks = service.NewTaskService(user, taskRepo, uow, observer)
		app.Grades = service.NewGradeService(user, courseRepo, assignmentRepo, observer)
		app.Priority = service.NewPriorityService(user, courseRepo, assignmentRepo, taskRepo, uow, observer)
		app.Sync = service.NewSyncService(user, cfg.LMS.DefaultInstance, connectionRepo, router, engine, logNotifier, observer)
		app.Backup = service.NewBackupService(user, courseRepo, assignmentRepo, taskRepo, uow, observer)
		app.Config = cfg
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
