package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trovehq/trove/pkg/client"
)

var (
	taskDesc     string
	taskPriority string
	taskDue      string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		draft := client.TaskDraft{
			Title:       args[0],
			Description: taskDesc,
			Priority:    taskPriority,
		}
		if taskDue != "" {
			due, err := time.Parse("2006-01-02", taskDue)
			if err != nil {
				return fmt.Errorf("invalid --due date (want YYYY-MM-DD): %w", err)
			}
			draft.DueDate = &due
		}

		task, err := s.tasks.Add(cmd.Context(), draft)
		if err != nil {
			return err
		}
		fmt.Printf("added task %s\n", task.ID)
		return nil
	},
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.tasks.Fetch(cmd.Context()); err != nil {
			return err
		}

		for _, t := range s.tasks.Items() {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			due := ""
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02")
			}
			fmt.Printf("[%s] %-36s  %-6s %-10s %s\n", mark, t.ID, t.Priority, due, t.Title)
		}
		return nil
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		completed := true
		if _, err := s.tasks.Update(cmd.Context(), args[0], client.TaskPatch{Completed: &completed}); err != nil {
			return err
		}
		fmt.Println("done")
		return nil
	},
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.tasks.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	tasksAddCmd.Flags().StringVar(&taskDesc, "desc", "", "task description")
	tasksAddCmd.Flags().StringVar(&taskPriority, "priority", "", "low, medium or high")
	tasksAddCmd.Flags().StringVar(&taskDue, "due", "", "due date (YYYY-MM-DD)")

	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	tasksCmd.AddCommand(tasksRmCmd)
}
