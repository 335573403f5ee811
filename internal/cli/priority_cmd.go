package cli

import (
	"fmt"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/contract"
	"github.com/spf13/cobra"
)

func newPanicCmd(app *App) *cobra.Command {
	var (
		top        int
		plan, save bool
	)

	cmd := &cobra.Command{
		Use:   "panic",
		Short: "Rank the ungraded assignments that need attention first",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			req := contract.NewPanicRequest()
			req.Now = &now
			req.TopN = app.settings().Priority.PanicTopN
			if cmd.Flags().Changed("top") {
				req.TopN = top
			}
			req.Persist = save

			resp, err := app.Priority.Panic(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !plan && !save {
				resp.Plan = nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatPanic(resp))
			if save && len(resp.Plan) > 0 {
				fmt.Fprintf(out, "Saved %d study task(s).\n", len(resp.Plan))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 3, "How many assignments to focus on (default from config)")
	cmd.Flags().BoolVar(&plan, "plan", false, "Show a two-day study plan for the top assignments")
	cmd.Flags().BoolVar(&save, "save", false, "Save the study plan as tasks")

	return cmd
}

func newSurvivalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "survival",
		Short: "Merge assignments and tasks into one ranked list",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			resp, err := app.Priority.Survival(cmd.Context(), contract.SurvivalRequest{Now: &now, Limit: limit})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSurvival(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many items (0 for all)")

	return cmd
}

func newInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Grade goals within reach and deadlines to watch",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			resp, err := app.Priority.Insights(cmd.Context(), &now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsights(resp))
			return nil
		},
	}
}
