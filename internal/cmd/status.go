package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusRunID string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the stored status and result of a previous run",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusRunID == "" {
			return fmt.Errorf("--run-id is required")
		}

		app, logr, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		defer logr.Sync() //nolint:errcheck

		run, err := app.RunRepo.FindByID(context.Background(), statusRunID)
		if err != nil {
			return fmt.Errorf("find run %s: %w", statusRunID, err)
		}

		out, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal run: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusRunID, "run-id", "", "run ID to look up")
}
