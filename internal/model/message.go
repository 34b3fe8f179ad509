// Package model defines the conversation and session data types shared
// across the pipeline, store, and presentation layers.
package model

import (
	"encoding/json"
	"time"
)

// MessageKind identifies the author or origin of a conversation message.
type MessageKind string

const (
	KindUser      MessageKind = "user"
	KindAssistant MessageKind = "assistant"
	KindProgress  MessageKind = "progress"
	KindHook      MessageKind = "hook"
)

// BlockType identifies a content block variant.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
	BlockThinking   BlockType = "thinking"
	BlockImage      BlockType = "image"
	BlockProgress   BlockType = "progress"
	BlockHook       BlockType = "hook"
)

// ContentBlock is one unit of message content. It is a tagged union: Type
// decides which fields are meaningful. Kept flat rather than as an
// interface hierarchy so blocks copy and marshal cheaply.
type ContentBlock struct {
	Type BlockType

	// text, thinking, progress: the display text.
	Text string

	// tool_use: the invocation id; tool_result and progress: the
	// referenced invocation id.
	ID string

	// tool_use only.
	ToolName  string
	ToolInput json.RawMessage

	// Attached by correlation: the result of this tool_use, and progress
	// records from the sub-agent it spawned.
	Result   *ToolResult
	Progress []ProgressRecord

	// Sub-agent id, when this invocation spawned one.
	AgentID string

	// tool_result only.
	IsError bool

	// image only.
	MediaType string
	ImageData string

	// hook only.
	HookEvent   string
	HookCommand string
}

// ToolResult is the outcome of a tool invocation, attached to its tool_use
// block during correlation.
type ToolResult struct {
	Content string
	IsError bool
}

// ProgressRecord is one sub-agent progress update correlated to a tool
// invocation.
type ProgressRecord struct {
	AgentID   string
	Prompt    string
	ToolUseID string
	Timestamp time.Time
}

// TokenUsage holds the token counters and computed cost for one message.
type TokenUsage struct {
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64
	TotalTokens         int64

	CostUSD float64
}

// Message is one entry of the navigable conversation sequence, in file
// order.
type Message struct {
	UUID      string
	Kind      MessageKind
	Timestamp time.Time
	Blocks    []ContentBlock

	// Assistant messages only.
	Model string
	Usage *TokenUsage
}

// PaginatedMessages is one fixed-size page of a conversation, newest
// first.
type PaginatedMessages struct {
	Messages      []Message
	TotalPages    int
	CurrentPage   int
	TotalMessages int
	HasMore       bool
}
