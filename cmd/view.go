package cmd

import (
	"fmt"

	"ccview/internal/cli"
	"ccview/internal/conversation"
	"ccview/internal/pipeline"
	"ccview/internal/source"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <session-id>",
	Short: "Paged view of a session conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

var (
	viewPage     int
	viewPageSize int
)

func init() {
	viewCmd.Flags().IntVar(&viewPage, "page", 1, "Page to show (1 = most recent)")
	viewCmd.Flags().IntVar(&viewPageSize, "page-size", 0, "Messages per page (0 = configured default)")
	rootCmd.AddCommand(viewCmd)
}

func runView(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	df, ok, err := source.FindSession(flagDataDir, args[0])
	if err != nil {
		return fmt.Errorf("finding session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %q not found under %s", args[0], flagDataDir)
	}

	rates := cfg.Resolver()
	pr := pipeline.ParseSession(df, rates)
	if pr.Err != nil {
		return fmt.Errorf("parsing session: %w", pr.Err)
	}

	pageSize := viewPageSize
	if pageSize <= 0 {
		pageSize = cfg.General.PageSize
	}

	page := conversation.Paginate(pr.Messages, viewPage, pageSize)

	fmt.Println()
	title := fmt.Sprintf("SESSION %s  %s", cli.Truncate(pr.Stats.SessionID, 10), pr.Stats.Project)
	if pr.Stats.Summary != "" {
		title += "  · " + cli.Truncate(pr.Stats.Summary, 48)
	}
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if len(page.Messages) == 0 {
		fmt.Println("  No messages in this session.")
		return nil
	}

	// Pages are newest-first; within a page, print oldest at the top so
	// the conversation reads downward.
	for i := len(page.Messages) - 1; i >= 0; i-- {
		fmt.Print(cli.RenderMessage(page.Messages[i]))
	}

	fmt.Println(cli.RenderPageFooter(page))
	return nil
}
