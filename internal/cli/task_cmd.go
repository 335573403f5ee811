package cli

import (
	"fmt"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "todo"},
		Short:   "Manage study tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskDeleteCmd(app),
		newTaskRecurCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		title, due, prio, repeat string
		minutes, every           int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dueDate, err := parseDate(due)
			if err != nil {
				return err
			}

			t := &domain.Task{
				Title:      title,
				DueDate:    dueDate,
				Priority:   domain.TaskPriority(prio),
				EstMinutes: minutes,
			}
			if repeat != "" {
				t.RecurrenceRule = &domain.RecurrenceRule{
					Frequency: domain.RecurrenceFrequency(repeat),
					Interval:  every,
				}
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added task %s %s\n", formatter.Bold(t.Title), formatter.TruncID(t.ID))
			if t.IsRecurringTemplate() {
				fmt.Fprintln(out, formatter.Dim("Occurrences are created by: semester task recur"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD); required for repeating tasks")
	cmd.Flags().StringVar(&prio, "priority", string(domain.PriorityMedium), "low, medium or high")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Estimated minutes")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Repeat daily or weekly")
	cmd.Flags().IntVar(&every, "every", 1, "Repeat interval, e.g. 2 with --repeat weekly")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done TASK",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.SetCompleted(ctx, id, !undo)
			if err != nil {
				return err
			}
			if t.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔"), t.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", t.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen the task instead")

	return cmd
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newTaskRecurCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recur",
		Short: "Create due occurrences of repeating tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			created, err := app.Tasks.GenerateRecurring(cmd.Context(), now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprintln(out, formatter.Dim("All repeating tasks are up to date."))
				return nil
			}
			fmt.Fprintf(out, "Created %d task(s)\n", len(created))
			fmt.Fprint(out, formatter.FormatTaskList(created, now))
			return nil
		},
	}
}
