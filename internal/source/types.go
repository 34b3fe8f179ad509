package source

import (
	"encoding/json"
	"time"
)

// Entry kinds recognized by the decoder.
const (
	EntryTypeUser      = "user"
	EntryTypeAssistant = "assistant"
	EntryTypeSummary   = "summary"
	EntryTypeProgress  = "progress"
)

// RawEntry represents a single line in a session log file. Entries are
// immutable once decoded.
type RawEntry struct {
	Type      string           `json:"type"`
	UUID      string           `json:"uuid,omitempty"`
	Timestamp string           `json:"timestamp,omitempty"`
	SessionID string           `json:"sessionId,omitempty"`
	Summary   string           `json:"summary,omitempty"`
	Message   *RawMessage      `json:"message,omitempty"`
	Data      *RawProgressData `json:"data,omitempty"`

	// Correlation id spellings observed across log format versions. Use
	// ParentToolUseID() instead of reading these directly.
	TopParentToolUseID string `json:"parentToolUseID,omitempty"`
	TopToolUseID       string `json:"toolUseID,omitempty"`

	// Structured sub-agent id, present in newer logs.
	TopAgentID string `json:"agentId,omitempty"`

	// Older log formats recorded the computed cost inline per entry.
	CostUSD float64 `json:"costUSD,omitempty"`

	IsSidechain bool `json:"isSidechain,omitempty"`
}

// RawProgressData is the opaque payload of a progress entry. Hook events
// arrive as progress entries whose payload carries a hook name and command.
type RawProgressData struct {
	Type            string `json:"type,omitempty"`
	Prompt          string `json:"prompt,omitempty"`
	AgentID         string `json:"agentId,omitempty"`
	ParentToolUseID string `json:"parentToolUseId,omitempty"`
	HookEvent       string `json:"hookEvent,omitempty"`
	Command         string `json:"command,omitempty"`
}

// RawMessage is the nested message record of a user/assistant entry.
// Content is either a JSON string or an array of content blocks.
type RawMessage struct {
	ID      string          `json:"id,omitempty"`
	Role    string          `json:"role"`
	Model   string          `json:"model,omitempty"`
	Content json.RawMessage `json:"content"`
	Usage   *RawUsage       `json:"usage,omitempty"`
}

// RawUsage holds token counts from the API response.
type RawUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

// ParentToolUseID resolves the tool invocation this entry correlates to,
// trying each known field spelling in fixed priority order. Returns "" when
// no spelling is present.
func (e *RawEntry) ParentToolUseID() string {
	if e.TopParentToolUseID != "" {
		return e.TopParentToolUseID
	}
	if e.TopToolUseID != "" {
		return e.TopToolUseID
	}
	if e.Data != nil && e.Data.ParentToolUseID != "" {
		return e.Data.ParentToolUseID
	}
	return ""
}

// AgentID resolves the structured sub-agent id, preferring the top-level
// field over the nested payload field.
func (e *RawEntry) AgentID() string {
	if e.TopAgentID != "" {
		return e.TopAgentID
	}
	if e.Data != nil && e.Data.AgentID != "" {
		return e.Data.AgentID
	}
	return ""
}

// IsHook reports whether a progress entry carries a hook payload rather
// than sub-agent activity.
func (e *RawEntry) IsHook() bool {
	return e.Data != nil && (e.Data.Type == "hook" || e.Data.HookEvent != "")
}

// Time parses the entry timestamp, returning the zero time on failure.
func (e *RawEntry) Time() time.Time {
	if e.Timestamp == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// DiscoveredFile represents a session log file found during directory scanning.
type DiscoveredFile struct {
	Path          string
	Project       string // decoded display name (e.g., "gitlore")
	ProjectDir    string // raw directory name
	SessionID     string // extracted from filename
	IsSubagent    bool
	ParentSession string // for subagents: parent session UUID
	ModTime       time.Time
}
