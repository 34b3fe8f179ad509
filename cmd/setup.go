package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"ccview/internal/cli"
	"ccview/internal/config"
	"ccview/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	files, _ := source.ScanDir(flagDataDir)
	projectCount := source.CountProjects(files)

	fmt.Println()
	fmt.Println("  Welcome to ccview!")
	if len(files) > 0 {
		fmt.Printf("  Found %s session files in %s (%d projects)\n",
			cli.FormatNumber(int64(len(files))), flagDataDir, projectCount)
	}
	fmt.Println()

	dataDir := cfg.General.DataDir
	if dataDir == "" {
		dataDir = flagDataDir
	}
	days := cfg.General.DefaultDays
	pageSize := cfg.General.PageSize
	includeSubagents := cfg.General.IncludeSubagents

	budgetStr := ""
	if cfg.Budget.MonthlyUSD != nil {
		budgetStr = strconv.FormatFloat(*cfg.Budget.MonthlyUSD, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Agent data directory").
				Description("Where session JSONL files live.").
				Value(&dataDir),

			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
				).
				Value(&days),

			huh.NewSelect[int]().
				Title("Messages per page").
				Options(
					huh.NewOption("10", 10),
					huh.NewOption("20", 20),
					huh.NewOption("50", 50),
				).
				Value(&pageSize),

			huh.NewConfirm().
				Title("Include sub-agent sessions?").
				Value(&includeSubagents),

			huh.NewInput().
				Title("Monthly budget in USD").
				Description("Leave blank for no budget tracking.").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return fmt.Errorf("enter a number, like 200")
					}
					return nil
				}).
				Value(&budgetStr),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	cfg.General.DataDir = strings.TrimSpace(dataDir)
	cfg.General.DefaultDays = days
	cfg.General.PageSize = pageSize
	cfg.General.IncludeSubagents = includeSubagents

	budgetStr = strings.TrimSpace(budgetStr)
	if budgetStr == "" {
		cfg.Budget.MonthlyUSD = nil
	} else if v, err := strconv.ParseFloat(budgetStr, 64); err == nil {
		cfg.Budget.MonthlyUSD = &v
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\n  Saved to %s\n", config.Path())
	fmt.Println("  Run `ccview setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
