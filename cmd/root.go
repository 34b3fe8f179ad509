// Package cmd implements the ccview CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ccview/internal/cli"
	"ccview/internal/config"
	"ccview/internal/model"
	"ccview/internal/pipeline"
	"ccview/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDays        int
	flagProject     string
	flagNoCache     bool
	flagDataDir     string
	flagQuiet       bool
	flagNoSubagents bool
)

var rootCmd = &cobra.Command{
	Use:   "ccview",
	Short: "Coding-agent session dashboard",
	Long:  "Browse your coding-agent sessions: conversations, tool calls, sub-agents, and costs.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.RunE = runSummary

	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".claude")

	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 30, "Time window in days")
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "Filter to project (substring match)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", defaultDataDir, "Agent data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoSubagents, "no-subagents", false, "Exclude sub-agent sessions")
}

// loadConfig reads the config file and applies it to unset flags.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config error (using defaults): %v\n", err)
	}
	if cfg.General.DataDir != "" && !rootCmd.PersistentFlags().Changed("data-dir") {
		flagDataDir = cfg.General.DataDir
	}
	if cfg.General.DefaultDays > 0 && !rootCmd.PersistentFlags().Changed("days") {
		flagDays = cfg.General.DefaultDays
	}
	return cfg
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData(cfg config.Config) (*pipeline.LoadResult, error) {
	rates := cfg.Resolver()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning sessions...\n")
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%100 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	includeSubagents := cfg.General.IncludeSubagents && !flagNoSubagents

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()
			cr, err := pipeline.LoadWithCache(flagDataDir, includeSubagents, rates, cache, progressFn)
			if err != nil {
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "\n  Cache error, falling back to full parse\n")
				}
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %s sessions from cache (%d projects)    \n",
							cli.FormatNumber(int64(len(cr.Sessions))), cr.ProjectCount)
					} else {
						fmt.Fprintf(os.Stderr, "\r  %s cached + %d reparsed (%d projects)    \n",
							cli.FormatNumber(int64(cr.CacheHits)), cr.Reparsed, cr.ProjectCount)
					}
				}
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(flagDataDir, includeSubagents, rates, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s sessions across %d projects    \n",
			cli.FormatNumber(int64(result.ParsedFiles)), result.ProjectCount)
	}

	return result, nil
}

// applyFilters returns filtered sessions and the computed time range.
func applyFilters(sessions []model.SessionStats) ([]model.SessionStats, time.Time, time.Time) {
	now := time.Now()
	since := now.AddDate(0, 0, -flagDays)

	filtered := sessions
	if flagProject != "" {
		filtered = pipeline.FilterByProject(filtered, flagProject)
	}

	return filtered, since, now
}
