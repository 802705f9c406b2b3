package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/defense-scheduler/internal/algorithm"
	"github.com/noah-isme/defense-scheduler/pkg/config"
	"github.com/noah-isme/defense-scheduler/pkg/paramschema"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered algorithm tags and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := algorithm.NewDefaultRegistry()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		published, err := paramschema.Load(cfg.ParamSchemaDir())
		if err != nil {
			return fmt.Errorf("load published parameter descriptors: %w", err)
		}
		merged := paramschema.Merge(registry, published)

		for _, tag := range registry.Tags() {
			fmt.Println(tag)
			for _, d := range merged[tag] {
				raw, err := json.Marshal(d.Default)
				if err != nil {
					return fmt.Errorf("marshal default for %s.%s: %w", tag, d.Name, err)
				}
				fmt.Printf("  %-22s %-7s default=%-8s %s\n", d.Name, d.Type, raw, d.Description)
			}
		}
		return nil
	},
}
