package cmd

import (
	"fmt"
	"sort"

	"ccview/internal/cli"
	"ccview/internal/config"
	"ccview/internal/conversation"
	"ccview/internal/pipeline"
	"ccview/internal/source"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents <session-id>",
	Short: "Sub-agent runs spawned by a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgents,
}

var (
	agentID   string
	agentPage int
)

func init() {
	agentsCmd.Flags().StringVarP(&agentID, "agent", "a", "", "Show this agent's conversation instead of the list")
	agentsCmd.Flags().IntVar(&agentPage, "page", 1, "Page to show (with --agent)")
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	parent, ok, err := source.FindSession(flagDataDir, args[0])
	if err != nil {
		return fmt.Errorf("finding session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %q not found under %s", args[0], flagDataDir)
	}

	agents, err := source.SubagentFiles(flagDataDir, parent.SessionID)
	if err != nil {
		return fmt.Errorf("scanning sub-agents: %w", err)
	}
	if len(agents) == 0 {
		fmt.Println("\n  No sub-agent runs for this session.")
		return nil
	}

	rates := cfg.Resolver()

	if agentID != "" {
		id := agentID
		df, ok := agents[id]
		if !ok {
			// Accept the bare id without the agent- prefix too.
			id = "agent-" + agentID
			df, ok = agents[id]
		}
		if !ok {
			return fmt.Errorf("agent %q not found in session %s", agentID, parent.SessionID)
		}
		return viewAgent(cfg, id, df, rates)
	}

	ids := make([]string, 0, len(agents))
	for id := range agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUB-AGENTS  %s (%d)", cli.Truncate(parent.SessionID, 10), len(ids))))
	fmt.Println()

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		pr := pipeline.ParseSession(agents[id], rates)
		if pr.Err != nil {
			rows = append(rows, []string{id, "-", "-", "-", "parse error"})
			continue
		}
		rows = append(rows, []string{
			id,
			cli.Truncate(pr.Stats.Summary, 36),
			cli.FormatNumber(int64(pr.Stats.MessageCount)),
			cli.FormatNumber(int64(pr.Stats.ToolCallCount)),
			cli.FormatCost(pr.Stats.TotalCostUSD),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Agent", "Summary", "Msgs", "Tools", "Cost"},
		Rows:    rows,
	}))

	return nil
}

func viewAgent(cfg config.Config, id string, df source.DiscoveredFile, rates config.PriceResolver) error {
	pr := pipeline.ParseSession(df, rates)
	if pr.Err != nil {
		return fmt.Errorf("parsing agent file: %w", pr.Err)
	}

	page := conversation.Paginate(pr.Messages, agentPage, cfg.General.AgentPageSize)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("AGENT %s  parent %s", id, cli.Truncate(pr.Stats.ParentSession, 10))))
	fmt.Println()

	for i := len(page.Messages) - 1; i >= 0; i-- {
		fmt.Print(cli.RenderMessage(page.Messages[i]))
	}

	fmt.Println(cli.RenderPageFooter(page))
	return nil
}
