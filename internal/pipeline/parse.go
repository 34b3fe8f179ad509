// Package pipeline orchestrates session loading, caching, and aggregation.
package pipeline

import (
	"os"

	"ccview/internal/config"
	"ccview/internal/conversation"
	"ccview/internal/model"
	"ccview/internal/source"
)

// ParseResult holds the output of parsing a single session file.
type ParseResult struct {
	Stats    model.SessionStats
	Messages []model.Message
	Err      error
}

// ParseSession reads a session file wholesale and runs the conversation
// pipeline over it. The read is the only I/O; the parse itself is pure.
func ParseSession(df source.DiscoveredFile, rates config.PriceResolver) ParseResult {
	data, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}

	res := conversation.Parse(data, rates)

	stats := res.Stats
	stats.SessionID = df.SessionID
	stats.Project = df.Project
	stats.FilePath = df.Path
	stats.IsSubagent = df.IsSubagent
	stats.ParentSession = df.ParentSession

	return ParseResult{Stats: stats, Messages: res.Messages}
}
