package cmd

import (
	"fmt"
	"sort"

	"ccview/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default days:      %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Include subagents: %v\n", cfg.General.IncludeSubagents)
	fmt.Printf("    Page size:         %d\n", cfg.General.PageSize)
	fmt.Printf("    Agent page size:   %d\n", cfg.General.AgentPageSize)
	if cfg.General.DataDir != "" {
		fmt.Printf("    Data directory:    %s\n", cfg.General.DataDir)
	}
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.MonthlyUSD != nil {
		fmt.Printf("    Monthly budget: $%.0f\n", *cfg.Budget.MonthlyUSD)
	} else {
		fmt.Println("    Monthly budget: not set")
	}
	fmt.Println()

	fmt.Println("  [Pricing]")
	if len(cfg.Pricing.Overrides) == 0 {
		fmt.Println("    Using built-in rates for all models")
	} else {
		models := make([]string, 0, len(cfg.Pricing.Overrides))
		for m := range cfg.Pricing.Overrides {
			models = append(models, m)
		}
		sort.Strings(models)
		for _, m := range models {
			fmt.Printf("    Override: %s\n", m)
		}
	}
	fmt.Println()

	fmt.Println("  Run `ccview setup` to reconfigure.")
	return nil
}
