// Package source discovers and decodes session log files.
package source

import (
	"bytes"
	"encoding/json"
)

// DecodeLines splits raw log text into newline-delimited JSON records and
// decodes each into a RawEntry, preserving file order. Blank lines, lines
// that are not valid JSON, and records missing required fields for their
// kind are discarded silently: session logs may be hand-edited or truncated,
// so decoding is best-effort.
func DecodeLines(data []byte) []RawEntry {
	var entries []RawEntry
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var e RawEntry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		if !hasRequiredFields(&e) {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// hasRequiredFields validates the per-kind required fields. Unknown kinds
// are rejected here so later passes only see the four known shapes.
func hasRequiredFields(e *RawEntry) bool {
	switch e.Type {
	case EntryTypeUser, EntryTypeAssistant:
		return e.UUID != "" && e.Message != nil
	case EntryTypeSummary:
		return e.Summary != ""
	case EntryTypeProgress:
		return e.UUID != ""
	default:
		return false
	}
}
