package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/importer"
	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore all coursework as JSON",
	}

	cmd.AddCommand(
		newBackupExportCmd(app),
		newBackupImportCmd(app),
	)

	return cmd
}

func newBackupExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup to a file or stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.Backup.Export(cmd.Context())
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				return importer.WriteSnapshot(cmd.OutOrStdout(), snapshot)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating backup file: %w", err)
			}
			if err := importer.WriteSnapshot(f, snapshot); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing backup file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d course(s), %d assignment(s), %d task(s) to %s\n",
				len(snapshot.Courses), len(snapshot.Assignments), len(snapshot.Tasks), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newBackupImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Restore a backup; records are merged by ID",
		Long: `Restore a backup file ("-" reads stdin). Courses, assignments and tasks
are created or updated by ID. The whole file is validated first and nothing
is written when any record is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				snapshot *importer.Snapshot
				err      error
			)
			if args[0] == "-" {
				snapshot, err = importer.ReadSnapshot(cmd.InOrStdin())
			} else {
				snapshot, err = importer.LoadSnapshot(args[0])
			}
			if err != nil {
				return err
			}

			res, err := app.Backup.Import(cmd.Context(), snapshot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d course(s), %d assignment(s), %d task(s)\n",
				formatter.StyleGreen.Render("✔"), res.Courses, res.Assignments, res.Tasks)
			return nil
		},
	}
}

func newCalendarCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export open deadlines as an iCalendar (.ics) file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ics, err := app.Backup.Calendar(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), ics)
				return err
			}
			if err := os.WriteFile(outPath, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}
