// Package conversation turns decoded log entries into a navigable message
// model: content normalization, cost accounting, sub-agent correlation,
// session aggregation, and pagination.
package conversation

import (
	"time"

	"ccview/internal/config"
	"ccview/internal/model"
	"ccview/internal/source"
)

// DefaultPageSize is the page size for the full-session view. Embedded
// sub-agent views use a smaller caller-supplied size.
const DefaultPageSize = 20

// maxSummaryLength bounds the fallback summary taken from the first user
// message.
const maxSummaryLength = 100

// emptySummary is reported for sessions with no summary entry and no user
// text.
const emptySummary = "(empty session)"

// Result is the output of a full parse of one session log.
type Result struct {
	Messages []model.Message
	Stats    model.SessionStats
	Summary  string
}

// Parse decodes raw session log text and builds the full conversation
// model. Parsing is deterministic and allocation-local: nothing is cached
// or shared between invocations. Rates are resolved through the given
// PriceResolver once per message that carries token usage.
func Parse(data []byte, rates config.PriceResolver) Result {
	entries := source.DecodeLines(data)

	b := newBuilder(rates)
	b.buildMessages(entries)
	standalone := b.linkProgress(entries)
	messages := b.merge(standalone)

	stats := b.finalizeStats()
	stats.Summary = b.resolveSummary()

	return Result{
		Messages: messages,
		Stats:    stats,
		Summary:  stats.Summary,
	}
}

// resolveSummary applies the summary resolution order: explicit summary
// entry, then first user message text (truncated), then a placeholder.
func (b *builder) resolveSummary() string {
	if b.summaryText != "" {
		return b.summaryText
	}
	if b.firstUserText != "" {
		return truncateSummary(b.firstUserText, maxSummaryLength)
	}
	return emptySummary
}

func truncateSummary(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// finalizeStats derives the remaining SessionStats fields from the
// accumulated counters.
func (b *builder) finalizeStats() model.SessionStats {
	stats := b.stats

	if !b.minTime.IsZero() && !b.maxTime.IsZero() {
		ms := b.maxTime.Sub(b.minTime).Milliseconds()
		if ms > 0 {
			stats.DurationMs = ms
		}
	}
	stats.StartTime = b.minTime
	stats.EndTime = b.maxTime

	// Prefer the recomputed per-message cost sum; older log formats only
	// carried the cost inline on entries.
	if stats.TotalCostUSD == 0 {
		stats.TotalCostUSD = b.inlineCost
	}

	stats.TotalPages = pageCount(stats.MessageCount, DefaultPageSize)

	return stats
}

func updateTimeRange(minTime, maxTime *time.Time, ts time.Time) {
	if ts.IsZero() {
		return
	}
	if minTime.IsZero() || ts.Before(*minTime) {
		*minTime = ts
	}
	if maxTime.IsZero() || ts.After(*maxTime) {
		*maxTime = ts
	}
}
