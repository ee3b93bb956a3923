package main

import (
	"fmt"

	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/render"
	"github.com/phrazzld/smarttask/internal/service/tasksync"
	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tasks, highest priority first",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
}

func (c *cli) runList(cmd *cobra.Command, args []string) error {
	if err := c.load(cmd.Context()); err != nil {
		return err
	}
	c.printTasks()
	return nil
}

func (c *cli) addCmd() *cobra.Command {
	var (
		input    domain.TaskInput
		deadline string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `  smarttask add --title "Prepare demo" --deadline 2026-10-20 --importance 8 --complexity 3
  smarttask add -t "Reply to review" -d today -i 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDeadline(deadline, domain.DateOf(c.now()))
			if err != nil {
				return err
			}
			input.Deadline = d

			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			task, err := c.controller.AddTask(cmd.Context(), input)
			if err != nil {
				return withHint(err)
			}

			fmt.Fprintf(c.out, "Added %q with score %s\n", task.Title, render.Score(task.Score))
			c.printTasks()
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "Deadline as YYYY-MM-DD, 'today' or 'tomorrow'")
	cmd.Flags().IntVarP(&input.Importance, "importance", "i", 0, "Importance from 1 to 10")
	cmd.Flags().IntVarP(&input.Complexity, "complexity", "c", 1, "Effort estimate in story points")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("deadline")
	_ = cmd.MarkFlagRequired("importance")

	return cmd
}

// parseDeadline accepts an ISO date or a relative day name.
func parseDeadline(s string, today domain.Date) (domain.Date, error) {
	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: deadline must be YYYY-MM-DD", domain.ErrValidation)
	}
	return d, nil
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			if err := c.controller.DeleteTask(cmd.Context(), args[0]); err != nil {
				c.printTasks()
				return withHint(err)
			}
			fmt.Fprintf(c.out, "Deleted %s\n", args[0])
			c.printTasks()
			return nil
		},
	}
}

func (c *cli) retryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Try the server again after falling back to demo mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd.Context()); err != nil {
				return err
			}
			if c.controller.Mode() == tasksync.ModeFallback {
				if err := c.controller.Retry(cmd.Context()); err != nil {
					return withHint(err)
				}
			}
			c.printTasks()
			return nil
		},
	}
}
