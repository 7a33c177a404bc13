package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ritik-gupta001/nexalyze/internal/orchestrator"
	"github.com/ritik-gupta001/nexalyze/models"
)

var (
	analyzeEntity      string
	analyzeTimeRange   string
	analyzeInstruction string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Run an analysis pipeline from the command line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// A bare query runs the text pipeline.
		if len(args) == 0 {
			return cmd.Help()
		}
		return analyzeTextCmd.RunE(cmd, args)
	},
}

var analyzeTextCmd = &cobra.Command{
	Use:   "text <query>",
	Short: "Analyze news sentiment for a free-text query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		task, err := app.orch.ExecuteTextAnalysis(cmd.Context(), orchestrator.NewTaskID(), args[0], analyzeEntity, analyzeTimeRange)
		if err != nil {
			return err
		}
		printTask(task)
		return nil
	},
}

var analyzeDocCmd = &cobra.Command{
	Use:   "doc <file>",
	Short: "Analyze a document file",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runFileAnalysis(cmd, args[0], "doc") },
}

var analyzeDataCmd = &cobra.Command{
	Use:   "data <file>",
	Short: "Analyze a tabular dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runFileAnalysis(cmd, args[0], "data") },
}

func runFileAnalysis(cmd *cobra.Command, path, kind string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	app, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	filename := filepath.Base(path)
	var task models.Task
	switch kind {
	case "doc":
		task, err = app.orch.ExecuteDocumentAnalysis(cmd.Context(), orchestrator.NewTaskID(), content, filename, analyzeInstruction)
	default:
		task, err = app.orch.ExecuteDataAnalysis(cmd.Context(), orchestrator.NewTaskID(), content, filename, analyzeInstruction)
	}
	if err != nil {
		return err
	}
	printTask(task)
	return nil
}

func printTask(task models.Task) {
	fmt.Printf("Task:    %s (%s)\n", task.TaskID, task.Status)
	if task.Summary != "" {
		fmt.Printf("\n%s\n", task.Summary)
	}
	if task.SentimentSummary != nil {
		s := task.SentimentSummary
		fmt.Printf("\nSentiment: %s (%.0f%% positive, %.0f%% neutral, %.0f%% negative)\n",
			s.Overall, s.Positive*100, s.Neutral*100, s.Negative*100)
	}
	if task.Forecast != "" {
		fmt.Printf("\nForecast: %s\n", task.Forecast)
	}
	if task.ReportURL != "" {
		fmt.Printf("\nReport:  %s\n", task.ReportURL)
	}
	for _, chart := range task.Charts {
		fmt.Printf("Chart:   %s\n", chart)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeTextCmd, analyzeDocCmd, analyzeDataCmd)

	analyzeCmd.PersistentFlags().StringVar(&analyzeEntity, "entity", "", "entity to analyze (extracted from the query when empty)")
	analyzeCmd.PersistentFlags().StringVar(&analyzeTimeRange, "time-range", "", "time range hint, e.g. last_7_days")
	analyzeDocCmd.Flags().StringVar(&analyzeInstruction, "instruction", "", "analysis instruction")
	analyzeDataCmd.Flags().StringVar(&analyzeInstruction, "instruction", "", "analysis instruction")
}
