package cmd

import (
	"fmt"
	"os"

	"ccview/internal/cli"
	"ccview/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Usage summary across sessions",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	result, err := loadData(cfg)
	if err != nil {
		return err
	}

	if len(result.Sessions) == 0 {
		fmt.Println("\n  No sessions found.")
		return nil
	}

	filtered, since, until := applyFilters(result.Sessions)
	stats := pipeline.Aggregate(filtered, since, until)

	if stats.TotalSessions == 0 {
		fmt.Println("\n  No sessions found in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSION ACTIVITY  Last %dd", flagDays)))
	fmt.Println()

	rows := [][]string{
		{"Sessions", cli.FormatNumber(int64(stats.TotalSessions))},
		{"Prompts", cli.FormatNumber(int64(stats.TotalPrompts))},
		{"Messages", cli.FormatNumber(int64(stats.TotalMessages))},
		{"Tool Calls", cli.FormatNumber(int64(stats.TotalToolCalls))},
		{"Total Time", cli.FormatDurationMs(stats.TotalDurationMs)},
		{"---"},
		{"Cost (est)", cli.FormatCost(stats.TotalCostUSD)},
		{"Cost/day", cli.FormatCost(stats.CostPerDay)},
		{"Sessions/day", fmt.Sprintf("%.1f", stats.SessionsPerDay)},
		{"Prompts/day", fmt.Sprintf("%.1f", stats.PromptsPerDay)},
	}

	if cfg.Budget.MonthlyUSD != nil && *cfg.Budget.MonthlyUSD > 0 {
		projected := stats.CostPerDay * 30
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Monthly budget", cli.FormatCost(*cfg.Budget.MonthlyUSD)})
		rows = append(rows, []string{"Projected/month", cli.FormatCost(projected)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "\n  %d files could not be read\n", result.FileErrors)
	}

	return nil
}
