package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/contract"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/grades"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "course",
		Aliases: []string{"courses"},
		Short:   "Manage courses",
	}

	cmd.AddCommand(
		newCourseAddCmd(app),
		newCourseListCmd(app),
		newCourseShowCmd(app),
		newCourseEditCmd(app),
		newCourseCategoriesCmd(app),
		newCourseScaleCmd(app),
		newCourseDeleteCmd(app),
	)

	return cmd
}

func newCourseAddCmd(app *App) *cobra.Command {
	var (
		d          courseDraft
		color      string
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if d.Name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				if err := courseWizard(&d).Run(); err != nil {
					return err
				}
				if d.Categories != "" {
					categories = append(categories, d.Categories)
				}
			}

			if err := validateOptionalFloat(d.Credits); err != nil {
				return fmt.Errorf("--credits: %w", err)
			}
			cats, err := parseCategories(categories)
			if err != nil {
				return err
			}
			c := &domain.Course{
				Name:        d.Name,
				Code:        d.Code,
				Credits:     d.credits(),
				Color:       color,
				Categories:  cats,
				SyncEnabled: true,
			}
			if err := app.Courses.Create(ctx, c); err != nil {
				return err
			}

			if d.Scale != "" {
				if _, usedDefault, err := app.Courses.SetGradingScale(ctx, c.ID, d.Scale); err != nil {
					return err
				} else if usedDefault {
					fmt.Fprintln(out, formatter.StyleYellow.Render("No scale lines parsed; using the default scale."))
				}
			}

			fmt.Fprintf(out, "Created course %s %s %s\n", formatter.Bold(c.DisplayCode()), c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&d.Name, "name", "", "Course name")
	cmd.Flags().StringVar(&d.Code, "code", "", "Course code, e.g. MATH 101")
	cmd.Flags().StringVar(&d.Credits, "credits", "0", "Credit hours")
	cmd.Flags().StringVar(&color, "color", "", "Display color (#rrggbb)")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Grading category as name:weight or id:name:weight (repeatable)")
	cmd.Flags().StringVar(&d.Scale, "scale", "", "Grading scale text, one \"A: 93\" entry per line")

	return cmd
}

func newCourseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List courses with their current grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courses, err := app.Courses.List(ctx)
			if err != nil {
				return err
			}
			report, err := app.Grades.Report(ctx, contract.NewGradeReportRequest())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses, report))
			return nil
		},
	}
}

func newCourseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show COURSE",
		Short: "Show a course with its breakdown and assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			course, err := app.Courses.GetByID(ctx, id)
			if err != nil {
				return err
			}
			view, err := app.Grades.CourseGrade(ctx, id)
			if err != nil {
				return err
			}
			assignments, err := app.Assignments.ListByCourse(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseDetail(course, view, assignments, app.now()))
			return nil
		},
	}
}

func newCourseEditCmd(app *App) *cobra.Command {
	var (
		name, code, color string
		credits           float64
		sync              bool
	)

	cmd := &cobra.Command{
		Use:   "edit COURSE",
		Short: "Change a course's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Courses.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				c.Name = name
			}
			if flags.Changed("code") {
				c.Code = code
			}
			if flags.Changed("color") {
				c.Color = color
			}
			if flags.Changed("credits") {
				c.Credits = credits
			}
			if flags.Changed("sync") {
				c.SyncEnabled = sync
			}
			if err := app.Courses.Update(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated course %s\n", formatter.Bold(c.DisplayCode()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Course name")
	cmd.Flags().StringVar(&code, "code", "", "Course code")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().Float64Var(&credits, "credits", 0, "Credit hours")
	cmd.Flags().BoolVar(&sync, "sync", true, "Keep the course in LMS sync runs")

	return cmd
}

func newCourseCategoriesCmd(app *App) *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "categories COURSE",
		Short: "Show or replace a course's grading categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var course *domain.Course
			if len(set) > 0 {
				cats, err := parseCategories(set)
				if err != nil {
					return err
				}
				if course, err = app.Courses.SetCategories(ctx, id, cats); err != nil {
					return err
				}
			} else if course, err = app.Courses.GetByID(ctx, id); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategories(course))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Replacement category as name:weight or id:name:weight (repeatable)")

	return cmd
}

func newCourseScaleCmd(app *App) *cobra.Command {
	var text, file string

	cmd := &cobra.Command{
		Use:   "scale COURSE",
		Short: "Show or replace a course's grading scale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading scale file: %w", err)
				}
				text = string(raw)
			}

			var course *domain.Course
			if text != "" {
				var usedDefault bool
				if course, usedDefault, err = app.Courses.SetGradingScale(ctx, id, text); err != nil {
					return err
				}
				if usedDefault {
					fmt.Fprintln(out, formatter.StyleYellow.Render("No scale lines parsed; using the default scale."))
				}
			} else if course, err = app.Courses.GetByID(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(out, grades.FormatScale(course.GradingScale))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "set", "", "Scale text, one \"A: 93\" entry per line")
	cmd.Flags().StringVar(&file, "file", "", "Read the scale text from a file")
	cmd.MarkFlagsMutuallyExclusive("set", "file")

	return cmd
}

func newCourseDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete COURSE",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Courses.Delete(ctx, id, force)
			if err != nil {
				return err
			}
			msg := "Deleted course " + formatter.TruncID(id)
			if removed > 0 {
				msg += fmt.Sprintf(" and %d assignment(s)", removed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Also delete the course's assignments")

	return cmd
}
