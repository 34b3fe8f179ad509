package conversation

import (
	"time"

	"ccview/internal/config"
	"ccview/internal/model"
	"ccview/internal/source"
)

// blockRef locates one content block within the built message sequence.
type blockRef struct {
	msg   int
	block int
}

// indexedMessage pairs a built message with its source entry position so
// standalone progress messages can be woven back in file order.
type indexedMessage struct {
	entry int
	msg   model.Message
}

// overlayEntry accumulates pass-2 additions for one tool invocation. The
// final merge step applies it to the pass-1 blocks, so pass 2 never
// mutates messages while traversing.
type overlayEntry struct {
	progress []model.ProgressRecord
	agentID  string
}

type builder struct {
	rates config.PriceResolver

	built     []indexedMessage
	toolIndex map[string]blockRef
	overlay   map[string]*overlayEntry

	stats         model.SessionStats
	summaryText   string
	firstUserText string
	inlineCost    float64
	minTime       time.Time
	maxTime       time.Time
}

func newBuilder(rates config.PriceResolver) *builder {
	return &builder{
		rates:     rates,
		toolIndex: make(map[string]blockRef),
		overlay:   make(map[string]*overlayEntry),
	}
}

// buildMessages is pass 1: a single traversal that builds a Message per
// user/assistant entry, registers tool_use blocks in the correlation index,
// attaches tool_result blocks to their invocation, and accumulates session
// counters. Summary entries are captured here too; progress entries wait
// for pass 2.
func (b *builder) buildMessages(entries []source.RawEntry) {
	for i := range entries {
		e := &entries[i]

		if e.CostUSD > 0 {
			b.inlineCost += e.CostUSD
		}

		switch e.Type {
		case source.EntryTypeSummary:
			if b.summaryText == "" {
				b.summaryText = e.Summary
			}

		case source.EntryTypeUser, source.EntryTypeAssistant:
			b.addMessage(i, e)
		}
	}
}

func (b *builder) addMessage(entryIdx int, e *source.RawEntry) {
	msg := model.Message{
		UUID:      e.UUID,
		Kind:      model.MessageKind(e.Type),
		Timestamp: e.Time(),
		Blocks:    normalizeContent(e.Message.Content),
		Model:     e.Message.Model,
	}

	if u := e.Message.Usage; u != nil {
		usage := &model.TokenUsage{
			InputTokens:         u.InputTokens,
			OutputTokens:        u.OutputTokens,
			CacheCreationTokens: u.CacheCreationInputTokens,
			CacheReadTokens:     u.CacheReadInputTokens,
		}
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens +
			usage.CacheCreationTokens + usage.CacheReadTokens
		usage.CostUSD = b.rates.Resolve(e.Message.Model).Cost(
			usage.InputTokens, usage.OutputTokens,
			usage.CacheCreationTokens, usage.CacheReadTokens,
		)
		msg.Usage = usage
		b.stats.TotalCostUSD += usage.CostUSD
	}

	msgIdx := len(b.built)
	for bi := range msg.Blocks {
		blk := &msg.Blocks[bi]
		switch blk.Type {
		case model.BlockToolUse:
			b.stats.ToolCallCount++
			if _, exists := b.toolIndex[blk.ID]; !exists {
				b.toolIndex[blk.ID] = blockRef{msg: msgIdx, block: bi}
			}
		case model.BlockToolResult:
			b.attachResult(e, blk, msg.Blocks)
		}
	}

	b.built = append(b.built, indexedMessage{entry: entryIdx, msg: msg})

	b.stats.MessageCount++
	if e.Type == source.EntryTypeUser {
		b.stats.PromptCount++
		if b.firstUserText == "" {
			b.firstUserText = textContent(msg.Blocks)
		}
	}
	updateTimeRange(&b.minTime, &b.maxTime, msg.Timestamp)
}

// attachResult links a tool_result block to the tool_use it references and
// attempts sub-agent id discovery: the structured field first, then
// best-effort recovery from the result text. A reference to an unknown id
// attaches to nothing; that is not an error.
//
// current holds the blocks of the message still under construction: a
// tool_use in the same content array is indexed at len(b.built), which is
// not appended yet, so same-message references resolve through current.
func (b *builder) attachResult(e *source.RawEntry, blk *model.ContentBlock, current []model.ContentBlock) {
	ref, ok := b.toolIndex[blk.ID]
	if !ok {
		return
	}
	var target *model.ContentBlock
	if ref.msg == len(b.built) {
		target = &current[ref.block]
	} else {
		target = &b.built[ref.msg].msg.Blocks[ref.block]
	}
	if target.Result != nil {
		return
	}
	target.Result = &model.ToolResult{Content: blk.Text, IsError: blk.IsError}

	agentID := e.AgentID()
	if agentID == "" {
		agentID = RecoverAgentID(blk.Text)
	}
	if target.AgentID == "" && agentID != "" {
		target.AgentID = agentID
	}
}

// linkProgress is pass 2: a traversal of only progress-kind entries. Each
// resolves its parent tool invocation through the correlation-field adapter
// and lands in the overlay; entries with no resolvable parent become
// standalone messages so unlinked sub-agent activity stays visible. Hook
// payloads surface as their own message kind and are never linked to tools.
func (b *builder) linkProgress(entries []source.RawEntry) []indexedMessage {
	var standalone []indexedMessage

	for i := range entries {
		e := &entries[i]
		if e.Type != source.EntryTypeProgress {
			continue
		}

		if e.IsHook() {
			standalone = append(standalone, indexedMessage{entry: i, msg: hookMessage(e)})
			continue
		}

		parentID := e.ParentToolUseID()
		if _, ok := b.toolIndex[parentID]; parentID != "" && ok {
			ov := b.overlay[parentID]
			if ov == nil {
				ov = &overlayEntry{}
				b.overlay[parentID] = ov
			}
			ov.progress = append(ov.progress, progressRecord(e, parentID))
			if ov.agentID == "" {
				ov.agentID = e.AgentID()
			}
			continue
		}

		standalone = append(standalone, indexedMessage{entry: i, msg: progressMessage(e)})
	}

	return standalone
}

// merge applies the pass-2 overlay to the pass-1 blocks and weaves
// standalone progress/hook messages into the sequence in file order.
func (b *builder) merge(standalone []indexedMessage) []model.Message {
	for id, ov := range b.overlay {
		ref := b.toolIndex[id]
		blk := &b.built[ref.msg].msg.Blocks[ref.block]
		blk.Progress = append(blk.Progress, ov.progress...)
		if blk.AgentID == "" && ov.agentID != "" {
			blk.AgentID = ov.agentID
		}
	}

	merged := make([]model.Message, 0, len(b.built)+len(standalone))
	i, j := 0, 0
	for i < len(b.built) || j < len(standalone) {
		if j >= len(standalone) || (i < len(b.built) && b.built[i].entry < standalone[j].entry) {
			merged = append(merged, b.built[i].msg)
			i++
		} else {
			merged = append(merged, standalone[j].msg)
			j++
		}
	}
	return merged
}

func progressRecord(e *source.RawEntry, toolUseID string) model.ProgressRecord {
	rec := model.ProgressRecord{
		AgentID:   e.AgentID(),
		ToolUseID: toolUseID,
		Timestamp: e.Time(),
	}
	if e.Data != nil {
		rec.Prompt = e.Data.Prompt
	}
	return rec
}

func progressMessage(e *source.RawEntry) model.Message {
	blk := model.ContentBlock{
		Type:    model.BlockProgress,
		ID:      e.ParentToolUseID(),
		AgentID: e.AgentID(),
	}
	if e.Data != nil {
		blk.Text = e.Data.Prompt
	}
	return model.Message{
		UUID:      e.UUID,
		Kind:      model.KindProgress,
		Timestamp: e.Time(),
		Blocks:    []model.ContentBlock{blk},
	}
}

func hookMessage(e *source.RawEntry) model.Message {
	blk := model.ContentBlock{Type: model.BlockHook}
	if e.Data != nil {
		blk.HookEvent = e.Data.HookEvent
		blk.HookCommand = e.Data.Command
	}
	return model.Message{
		UUID:      e.UUID,
		Kind:      model.KindHook,
		Timestamp: e.Time(),
		Blocks:    []model.ContentBlock{blk},
	}
}
