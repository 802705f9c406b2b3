// Package cmd implements the schedctl operator CLI, a second front
// door onto the same orchestrator.Service the HTTP API drives,
// in-process and without a network hop.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/defense-scheduler/internal/bootstrap"
	"github.com/noah-isme/defense-scheduler/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:           "schedctl",
	Short:         "Trigger and inspect defense-scheduler algorithm runs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the schedctl command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd, runCmd, statusCmd)
}

// buildApp loads config and wires the same service graph
// cmd/api-gateway uses, for subcommands that need the orchestrator or
// the run store.
func buildApp() (*bootstrap.App, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logr, err := zap.NewProduction()
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Env != config.EnvProduction {
		logr, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
	}

	app, err := bootstrap.Build(cfg, logr)
	if err != nil {
		return nil, logr, fmt.Errorf("bootstrap: %w", err)
	}
	return app, logr, nil
}
