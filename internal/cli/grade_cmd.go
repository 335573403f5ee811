package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/contract"
	"github.com/spf13/cobra"
)

func newGradeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "grade",
		Aliases: []string{"grades"},
		Short:   "Course grades, GPA and projections",
	}

	cmd.AddCommand(
		newGradeReportCmd(app),
		newGradeFinalCmd(app),
		newGradeWhatIfCmd(app),
	)

	return cmd
}

func newGradeReportCmd(app *App) *cobra.Command {
	var courseRefs []string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show every course grade and the GPA",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := contract.NewGradeReportRequest()
			for _, ref := range courseRefs {
				id, err := resolveCourseID(ctx, app, ref)
				if err != nil {
					return err
				}
				req.CourseIDs = append(req.CourseIDs, id)
			}

			report, err := app.Grades.Report(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGradeReport(report))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&courseRefs, "course", nil, "Only these courses (code or ID, repeatable)")

	return cmd
}

func newGradeFinalCmd(app *App) *cobra.Command {
	var (
		category string
		target   float64
	)

	cmd := &cobra.Command{
		Use:   "final COURSE",
		Short: "Score needed on the final to reach a target grade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = app.settings().Grades.TargetPercent
			}

			resp, err := app.Grades.RequiredFinal(ctx, contract.FinalRequest{
				CourseID:      id,
				CategoryID:    category,
				TargetPercent: target,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFinal(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Final category ID (default: detected by name)")
	cmd.Flags().Float64Var(&target, "target", 90, "Target course percent (default from config)")

	return cmd
}

func newGradeWhatIfCmd(app *App) *cobra.Command {
	var scores, adds []string

	cmd := &cobra.Command{
		Use:   "whatif COURSE",
		Short: "Project the course grade under hypothetical scores",
		Long: `Project the course grade without saving anything.

  --score ASSIGNMENT=EARNED     replace an assignment's score
  --add [CATEGORY:]EARNED/POSSIBLE  add a new graded item`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseID, err := resolveCourseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if len(scores) == 0 && len(adds) == 0 {
				return fmt.Errorf("give at least one --score or --add")
			}

			req := contract.WhatIfRequest{CourseID: courseID}
			for _, s := range scores {
				ref, value, ok := strings.Cut(s, "=")
				if !ok {
					return fmt.Errorf("--score %q: want ASSIGNMENT=EARNED", s)
				}
				id, err := resolveAssignmentID(ctx, app, ref)
				if err != nil {
					return err
				}
				earned, err := parseEarned(value)
				if err != nil || earned == nil {
					return fmt.Errorf("--score %q: invalid points", s)
				}
				req.Scores = append(req.Scores, contract.HypotheticalScore{AssignmentID: id, PointsEarned: *earned})
			}
			for _, s := range adds {
				category, fraction := "", s
				if c, f, ok := strings.Cut(s, ":"); ok {
					category, fraction = c, f
				}
				earned, possible, err := parseFraction(fraction)
				if err != nil {
					return err
				}
				req.Scores = append(req.Scores, contract.HypotheticalScore{
					CategoryID:     category,
					Title:          "Hypothetical",
					PointsEarned:   earned,
					PointsPossible: possible,
				})
			}

			resp, err := app.Grades.WhatIf(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWhatIf(resp))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&scores, "score", nil, "ASSIGNMENT=EARNED (repeatable)")
	cmd.Flags().StringArrayVar(&adds, "add", nil, "[CATEGORY:]EARNED/POSSIBLE (repeatable)")

	return cmd
}
