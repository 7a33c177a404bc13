package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ritik-gupta001/nexalyze/internal/scheduler"
	"github.com/ritik-gupta001/nexalyze/internal/server"
)

var servePort int

// serveCmd starts the HTTP API with the background sweeper.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis API server",
	Long: `Starts the HTTP API. Tasks are submitted via POST /tasks/analyze-text,
/tasks/analyze-doc, and /tasks/analyze-data; generated charts and reports are
served under /charts/ and /reports/. A background sweeper fails tasks that
exceed the wall-clock budget and prunes expired artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		port := app.settings.Server.Port
		if servePort != 0 {
			port = servePort
		}

		sweeper := scheduler.New(
			app.store,
			app.fs,
			[]string{app.settings.ChartsPath(), app.settings.ReportsPath()},
			time.Duration(app.settings.Pipeline.TaskBudgetMinutes)*time.Minute,
			time.Duration(app.settings.Pipeline.ArtifactRetentionDays)*24*time.Hour,
		)
		if err := sweeper.Start(); err != nil {
			return err
		}
		defer sweeper.Stop()

		srv := server.New(port, app.store, app.orch, app.fs, app.settings.ChartsPath(), app.settings.ReportsPath())

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)

		fmt.Fprintf(os.Stderr, "Listening on :%d\n", port)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errChan:
			return err
		case <-sigChan:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		wg.Wait()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
}
