package cmd

import (
	"fmt"
	"sort"

	"ccview/internal/cli"
	"ccview/internal/pipeline"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session list with summaries",
	RunE:  runSessions,
}

var sessionsLimit int

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20, "Number of sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
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
	sessions := pipeline.FilterByTime(filtered, since, until)

	if len(sessions) == 0 {
		fmt.Println("\n  No sessions in the selected time range.")
		return nil
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})

	if sessionsLimit > 0 && len(sessions) > sessionsLimit {
		sessions = sessions[:sessionsLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  Last %dd (showing %d)", flagDays, len(sessions))))
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		startStr := ""
		if !s.StartTime.IsZero() {
			startStr = s.StartTime.Local().Format("Jan 02 15:04")
		}

		project := s.Project
		if s.IsSubagent {
			project += " (sub)"
		}

		rows = append(rows, []string{
			cli.Truncate(s.SessionID, 10),
			startStr,
			cli.Truncate(project, 14),
			cli.Truncate(s.Summary, 32),
			cli.FormatNumber(int64(s.PromptCount)),
			cli.FormatNumber(int64(s.ToolCallCount)),
			cli.FormatDurationMs(s.DurationMs),
			cli.FormatCost(s.TotalCostUSD),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Session", "Start", "Project", "Summary", "Prompts", "Tools", "Duration", "Cost"},
		Rows:    rows,
	}))

	return nil
}
