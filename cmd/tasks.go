package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritik-gupta001/nexalyze/models"
	"github.com/ritik-gupta001/nexalyze/store"
)

var (
	tasksStatus   string
	tasksPage     int
	tasksPageSize int
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect stored analysis tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		var filter store.ListFilter
		if tasksStatus != "" {
			filter.Status = models.TaskStatus(tasksStatus)
		}

		tasks, total, err := app.store.List(filter, tasksPage, tasksPageSize)
		if err != nil {
			return err
		}

		for _, task := range tasks {
			fmt.Printf("%s  %-10s  %-17s  %s\n", task.TaskID, task.Status, task.TaskType, task.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("\n%d of %d tasks (page %d)\n", len(tasks), total, tasksPage)
		return nil
	},
}

var tasksGetCmd = &cobra.Command{
	Use:   "get <task-id>",
	Short: "Show one task as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		task, err := app.store.Get(args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(task, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd, tasksGetCmd)

	tasksListCmd.Flags().StringVar(&tasksStatus, "status", "", "filter by status (pending, processing, completed, failed)")
	tasksListCmd.Flags().IntVar(&tasksPage, "page", 1, "page number")
	tasksListCmd.Flags().IntVar(&tasksPageSize, "page-size", 20, "tasks per page")
}
