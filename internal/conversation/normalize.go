package conversation

import (
	"encoding/json"
	"strings"

	"ccview/internal/model"
)

// rawBlock is the loosely-typed shape of one content block as written to
// the log. Fields overlap across block types; the type tag decides which
// are meaningful.
type rawBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Thinking  string          `json:"thinking,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
	Source    *rawImageSource `json:"source,omitempty"`
}

type rawImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// normalizeContent maps the polymorphic message content field into the
// canonical block variants. A plain string becomes a single text block. An
// unrecognized block tag is coerced to a text block holding its serialized
// form: that case is a forward-compatibility gap, not corruption, so it is
// preserved rather than dropped.
func normalizeContent(content json.RawMessage) []model.ContentBlock {
	if len(content) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return []model.ContentBlock{{Type: model.BlockText, Text: s}}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(content, &elems); err != nil {
		return []model.ContentBlock{{Type: model.BlockText, Text: string(content)}}
	}

	blocks := make([]model.ContentBlock, 0, len(elems))
	for _, elem := range elems {
		blocks = append(blocks, normalizeBlock(elem))
	}
	return blocks
}

func normalizeBlock(elem json.RawMessage) model.ContentBlock {
	var rb rawBlock
	if err := json.Unmarshal(elem, &rb); err != nil {
		return model.ContentBlock{Type: model.BlockText, Text: string(elem)}
	}

	switch rb.Type {
	case "text":
		return model.ContentBlock{Type: model.BlockText, Text: rb.Text}
	case "thinking":
		return model.ContentBlock{Type: model.BlockThinking, Text: rb.Thinking}
	case "tool_use":
		return model.ContentBlock{
			Type:      model.BlockToolUse,
			ID:        rb.ID,
			ToolName:  rb.Name,
			ToolInput: rb.Input,
		}
	case "tool_result":
		return model.ContentBlock{
			Type:    model.BlockToolResult,
			ID:      rb.ToolUseID,
			Text:    flattenResultContent(rb.Content),
			IsError: rb.IsError,
		}
	case "image":
		blk := model.ContentBlock{Type: model.BlockImage}
		if rb.Source != nil {
			blk.MediaType = rb.Source.MediaType
			blk.ImageData = rb.Source.Data
		}
		return blk
	default:
		return model.ContentBlock{Type: model.BlockText, Text: string(elem)}
	}
}

// flattenResultContent stringifies a tool_result content field, which is
// either a plain string or an array of text/image blocks.
func flattenResultContent(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}

	var elems []rawBlock
	if err := json.Unmarshal(content, &elems); err != nil {
		return string(content)
	}

	var parts []string
	for _, e := range elems {
		if e.Type == "text" && e.Text != "" {
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// textContent concatenates the text blocks of a message, used for summary
// fallback extraction.
func textContent(blocks []model.ContentBlock) string {
	var parts []string
	for _, b := range blocks {
		if b.Type == model.BlockText && strings.TrimSpace(b.Text) != "" {
			parts = append(parts, strings.TrimSpace(b.Text))
		}
	}
	return strings.Join(parts, "\n")
}
