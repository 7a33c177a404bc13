package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritik-gupta001/nexalyze/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .nexalyze.yaml config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configName + ".yaml"
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
