package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var (
	runTag    string
	runParams string
	runSeed   int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute an algorithm run and print its result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runTag == "" {
			return fmt.Errorf("--tag is required")
		}

		params, err := parseParams(runParams)
		if err != nil {
			return fmt.Errorf("parse --params: %w", err)
		}
		if cmd.Flags().Changed("seed") {
			params["seed"] = runSeed
		}

		app, logr, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		defer logr.Sync() //nolint:errcheck

		result, run, err := app.Orchestrator.RunAlgorithm(context.Background(), runTag, params, nil)
		if err != nil {
			return fmt.Errorf("run %s: %w", runTag, err)
		}

		out, err := json.MarshalIndent(map[string]any{"run": run, "result": result}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runTag, "tag", "", "algorithm tag to run")
	runCmd.Flags().StringVar(&runParams, "params", "", `strategy parameters, shlex-tokenized, e.g. "population_size=40 generations=60"`)
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "RNG seed override")
}

// parseParams tokenizes a free-form parameter string the way
// php-workx-clai tokenizes REPL input, then splits each token on ","
// and "=" and infers a scalar JSON type per value.
func parseParams(raw string) (map[string]any, error) {
	out := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}

	tokens, err := shlex.Split(raw)
	if err != nil {
		return nil, err
	}

	for _, token := range tokens {
		for _, pair := range strings.Split(token, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("malformed parameter %q, expected key=value", pair)
			}
			out[strings.TrimSpace(key)] = inferScalar(strings.TrimSpace(value))
		}
	}
	return out, nil
}

func inferScalar(value string) any {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
