package cmd

import (
	"fmt"

	"ccview/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive session browser",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	// Force TrueColor so styling produces ANSI codes even when lipgloss
	// would otherwise fall back to the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	includeSubagents := cfg.General.IncludeSubagents && !flagNoSubagents
	app := tui.NewApp(flagDataDir, flagDays, flagProject, includeSubagents, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}
