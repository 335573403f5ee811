package cli

import (
	"fmt"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/spf13/cobra"
)

func newLMSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lms",
		Short: "Connect learning platforms and sync coursework",
	}

	cmd.AddCommand(
		newLMSConnectCmd(app),
		newLMSListCmd(app),
		newLMSDisconnectCmd(app),
		newLMSCoursesCmd(app),
		newLMSImportCmd(app),
		newLMSSyncCmd(app),
	)

	return cmd
}

func newLMSConnectCmd(app *App) *cobra.Command {
	var d connectDraft

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Add a Canvas, Blackboard or Moodle connection",
		Long: `Add a learning platform connection.

Canvas connections with an access token talk to the live API. Without a
token, and for Blackboard and Moodle, coursework is simulated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.Provider == "" {
				if !app.interactive() {
					return fmt.Errorf("--provider is required")
				}
				if err := connectWizard(&d).Run(); err != nil {
					return err
				}
			}

			conn, err := app.Sync.Connect(cmd.Context(), contract.ConnectRequest{
				Provider:    domain.Provider(d.Provider),
				InstanceURL: d.Instance,
				AccessToken: d.Token,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected %s at %s %s\n",
				formatter.StylePurple.Render(string(conn.Provider)), conn.InstanceURL, formatter.TruncID(conn.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&d.Provider, "provider", "", "canvas, blackboard or moodle")
	cmd.Flags().StringVar(&d.Instance, "instance", "", "Instance host (default from config)")
	cmd.Flags().StringVar(&d.Token, "token", "", "Access token; empty uses simulated data")

	return cmd
}

func newLMSListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connections and their sync status",
		RunE: func(cmd *cobra.Command, args []string) error {
			conns, err := app.Sync.ListConnections(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConnections(conns, app.now()))
			return nil
		},
	}
}

func newLMSDisconnectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect CONNECTION",
		Short: "Remove a connection; imported courses are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveConnectionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sync.Disconnect(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disconnected %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newLMSCoursesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "courses CONNECTION",
		Short: "List the courses a connection offers for import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveConnectionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			courses, err := app.Sync.ListRemoteCourses(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRemoteCourses(courses))
			return nil
		},
	}
}

func newLMSImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import CONNECTION EXTERNAL_ID",
		Short: "Import one course with its categories, scale and assignments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveConnectionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Sync.ImportCourse(ctx, contract.ImportCourseRequest{ConnectionID: id, ExternalID: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourseResult(*res))
			return nil
		},
	}
}

func newLMSSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [CONNECTION]",
		Short: "Reconcile every connection, or just one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			report := &contract.SyncReport{}

			run := func() error {
				if len(args) == 0 {
					r, err := app.Sync.SyncAll(ctx)
					if r != nil {
						report = r
					}
					return err
				}
				id, err := resolveConnectionID(ctx, app, args[0])
				if err != nil {
					return err
				}
				res, err := app.Sync.SyncConnection(ctx, id)
				if err != nil {
					return err
				}
				report.Results = append(report.Results, *res)
				return nil
			}

			var err error
			if app.interactive() {
				app.Notifier.Hold()
				err = formatter.RunWithSpinner(cmd.ErrOrStderr(), "Syncing coursework...", run)
				app.Notifier.Release()
			} else {
				err = run()
			}
			if err != nil && len(report.Results) == 0 {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyncReport(report))
			if err != nil {
				return err
			}
			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d connection(s) failed to sync", failed)
			}
			return nil
		},
	}
}
