package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ccview/internal/cli"
	"ccview/internal/pipeline"
	"ccview/internal/source"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <session-id>",
	Short: "Follow a live session, reprinting stats as it grows",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	df, ok, err := source.FindSession(flagDataDir, args[0])
	if err != nil {
		return fmt.Errorf("finding session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %q not found under %s", args[0], flagDataDir)
	}

	rates := cfg.Resolver()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes, err := source.WatchFile(ctx, df.Path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", df.Path, err)
	}

	fmt.Printf("  Watching %s (ctrl+c to stop)\n\n", df.Path)
	printWatchLine(pipeline.ParseSession(df, rates))

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			printWatchLine(pipeline.ParseSession(df, rates))
		}
	}
}

func printWatchLine(pr pipeline.ParseResult) {
	if pr.Err != nil {
		fmt.Printf("  parse error: %v\n", pr.Err)
		return
	}
	s := pr.Stats

	last := ""
	if n := len(pr.Messages); n > 0 {
		msg := pr.Messages[n-1]
		for _, blk := range msg.Blocks {
			switch {
			case blk.ToolName != "":
				last = "tool: " + blk.ToolName
			case blk.Text != "":
				last = cli.Truncate(blk.Text, 48)
			}
		}
	}

	fmt.Printf("  [%s] %s msgs · %s prompts · %s tools · %s · %s\n",
		s.EndTime.Local().Format("15:04:05"),
		cli.FormatNumber(int64(s.MessageCount)),
		cli.FormatNumber(int64(s.PromptCount)),
		cli.FormatNumber(int64(s.ToolCallCount)),
		cli.FormatCost(s.TotalCostUSD),
		last)
}
