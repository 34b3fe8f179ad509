package cmd

import (
	"fmt"

	"ccview/internal/cli"
	"ccview/internal/pipeline"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day activity",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
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
	days := pipeline.AggregateDays(filtered, since, until)

	if len(days) == 0 {
		fmt.Println("\n  No sessions in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		if d.Sessions == 0 {
			rows = append(rows, []string{
				d.Date.Format("Mon Jan 02"), "-", "-", "-", "-", "-",
			})
			continue
		}
		rows = append(rows, []string{
			d.Date.Format("Mon Jan 02"),
			cli.FormatNumber(int64(d.Sessions)),
			cli.FormatNumber(int64(d.Prompts)),
			cli.FormatNumber(int64(d.ToolCalls)),
			cli.FormatDurationMs(d.DurationMs),
			cli.FormatCost(d.CostUSD),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Sessions", "Prompts", "Tools", "Time", "Cost"},
		Rows:    rows,
	}))

	return nil
}
