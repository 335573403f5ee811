package cli

import (
	"fmt"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/spf13/cobra"
)

func newAssignmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignment",
		Aliases: []string{"assignments", "hw"},
		Short:   "Manage assignments and record grades",
	}

	cmd.AddCommand(
		newAssignmentAddCmd(app),
		newAssignmentListCmd(app),
		newAssignmentEditCmd(app),
		newAssignmentGradeCmd(app),
		newAssignmentDeleteCmd(app),
	)

	return cmd
}

func newAssignmentAddCmd(app *App) *cobra.Command {
	var (
		courseRef, title, category, due, details string
		points                                   float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an assignment to a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseID(ctx, app, courseRef)
			if err != nil {
				return err
			}
			dueDate, err := parseDeadline(due)
			if err != nil {
				return err
			}

			a := &domain.Assignment{
				CourseID:       courseID,
				CategoryID:     category,
				Title:          title,
				Details:        details,
				DueDate:        dueDate,
				PointsPossible: points,
			}
			if err := app.Assignments.Create(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s\n", formatter.Bold(a.Title),
				formatter.Dim("in "+a.CategoryID), formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&courseRef, "course", "", "Course code or ID")
	cmd.Flags().StringVar(&title, "title", "", "Assignment title")
	cmd.Flags().StringVar(&category, "category", "", "Grading category ID (default: the course's first)")
	cmd.Flags().StringVar(&due, "due", "", "Due date: YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339")
	cmd.Flags().Float64Var(&points, "points", 100, "Points possible")
	cmd.Flags().StringVar(&details, "details", "", "Notes")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newAssignmentListCmd(app *App) *cobra.Command {
	var (
		courseRef string
		ungraded  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			courses, err := app.Courses.List(ctx)
			if err != nil {
				return err
			}
			byID := make(map[string]*domain.Course, len(courses))
			for _, c := range courses {
				byID[c.ID] = c
			}

			var assignments []*domain.Assignment
			if courseRef != "" {
				courseID, err := resolveCourseID(ctx, app, courseRef)
				if err != nil {
					return err
				}
				assignments, err = app.Assignments.ListByCourse(ctx, courseID)
				if err != nil {
					return err
				}
			} else if assignments, err = app.Assignments.List(ctx); err != nil {
				return err
			}

			if ungraded {
				open := assignments[:0:0]
				for _, a := range assignments {
					if !a.IsGraded() {
						open = append(open, a)
					}
				}
				assignments = open
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssignmentList(assignments, byID, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&courseRef, "course", "", "Only this course (code or ID)")
	cmd.Flags().BoolVar(&ungraded, "ungraded", false, "Only assignments without a score")

	return cmd
}

func newAssignmentEditCmd(app *App) *cobra.Command {
	var (
		title, category, due, details string
		points                        float64
	)

	cmd := &cobra.Command{
		Use:   "edit ASSIGNMENT",
		Short: "Change an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAssignmentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Assignments.GetByID(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				a.Title = title
			}
			if flags.Changed("category") {
				a.CategoryID = category
			}
			if flags.Changed("details") {
				a.Details = details
			}
			if flags.Changed("points") {
				a.PointsPossible = points
			}
			if flags.Changed("due") {
				if a.DueDate, err = parseDeadline(due); err != nil {
					return err
				}
			}
			if err := app.Assignments.Update(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.Bold(a.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Assignment title")
	cmd.Flags().StringVar(&category, "category", "", "Grading category ID")
	cmd.Flags().StringVar(&due, "due", "", "Due date; empty clears it")
	cmd.Flags().Float64Var(&points, "points", 0, "Points possible")
	cmd.Flags().StringVar(&details, "details", "", "Notes")

	return cmd
}

func newAssignmentGradeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grade ASSIGNMENT SCORE",
		Short: "Record the points earned; \"none\" clears the grade",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAssignmentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			earned, err := parseEarned(args[1])
			if err != nil {
				return err
			}
			a, err := app.Assignments.RecordGrade(ctx, id, earned)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if earned == nil {
				fmt.Fprintf(out, "Cleared the grade for %s\n", formatter.Bold(a.Title))
				return nil
			}
			fmt.Fprintf(out, "Recorded %s for %s\n", formatter.FormatScore(a.PointsEarned, a.PointsPossible), formatter.Bold(a.Title))

			view, err := app.Grades.CourseGrade(ctx, a.CourseID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s now at %s %s\n", domain.CoalesceStr(view.Code, view.Name), formatter.FormatPercent(view.Grade.Percent), view.Grade.Letter)
			return nil
		},
	}
}

func newAssignmentDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ASSIGNMENT",
		Short: "Delete an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveAssignmentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Assignments.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted assignment %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
