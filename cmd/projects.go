package cmd

import (
	"fmt"

	"ccview/internal/cli"
	"ccview/internal/pipeline"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Per-project breakdown",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
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
	projects := pipeline.AggregateProjects(filtered, since, until)

	if len(projects) == 0 {
		fmt.Println("\n  No sessions in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTS  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			cli.Truncate(p.Project, 24),
			cli.FormatNumber(int64(p.Sessions)),
			cli.FormatNumber(int64(p.Prompts)),
			cli.FormatNumber(int64(p.ToolCalls)),
			cli.FormatCost(p.CostUSD),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Sessions", "Prompts", "Tools", "Cost"},
		Rows:    rows,
	}))

	return nil
}
