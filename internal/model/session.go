package model

import "time"

// SessionStats holds derived metrics for a single session file.
// Recomputed on every parse; never mutated afterwards.
type SessionStats struct {
	SessionID     string
	Project       string
	FilePath      string
	IsSubagent    bool
	ParentSession string
	Summary       string

	StartTime  time.Time
	EndTime    time.Time
	DurationMs int64

	PromptCount   int
	MessageCount  int
	ToolCallCount int
	TotalPages    int

	TotalCostUSD float64
}

// SummaryStats holds the top-level aggregate across all sessions.
type SummaryStats struct {
	TotalSessions   int
	TotalPrompts    int
	TotalMessages   int
	TotalToolCalls  int
	TotalDurationMs int64
	ActiveDays      int

	TotalCostUSD float64

	CostPerDay     float64
	SessionsPerDay float64
	PromptsPerDay  float64
	MinutesPerDay  float64
}

// DailyStats holds metrics for a single calendar day.
type DailyStats struct {
	Date       time.Time
	Sessions   int
	Prompts    int
	Messages   int
	ToolCalls  int
	DurationMs int64
	CostUSD    float64
}

// ProjectStats holds aggregated metrics for a single project.
type ProjectStats struct {
	Project   string
	Sessions  int
	Prompts   int
	Messages  int
	ToolCalls int
	CostUSD   float64
}
