package source

import (
	"strings"
	"testing"
	"time"
)

func TestDecodeLines_KeepsValidEntries(t *testing.T) {
	data := strings.Join([]string{
		`{"type":"user","uuid":"u1","timestamp":"2025-06-01T10:00:00Z","message":{"role":"user","content":"hello"}}`,
		`{"type":"assistant","uuid":"a1","message":{"role":"assistant","content":[{"type":"text","text":"hi"}]}}`,
		`{"type":"summary","summary":"Fix login bug"}`,
		`{"type":"progress","uuid":"p1","toolUseID":"t1"}`,
	}, "\n")

	entries := DecodeLines([]byte(data))
	if len(entries) != 4 {
		t.Fatalf("decoded %d entries, want 4", len(entries))
	}
	if entries[0].Type != EntryTypeUser || entries[0].UUID != "u1" {
		t.Errorf("entry 0 = %+v, want user u1", entries[0])
	}
	if entries[2].Summary != "Fix login bug" {
		t.Errorf("summary = %q, want %q", entries[2].Summary, "Fix login bug")
	}
}

func TestDecodeLines_DiscardsBadLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"blank", "   "},
		{"not json", "this is not json"},
		{"truncated json", `{"type":"user","uuid":"u1"`},
		{"unknown type", `{"type":"system","uuid":"s1"}`},
		{"user without uuid", `{"type":"user","message":{"role":"user","content":"x"}}`},
		{"user without message", `{"type":"user","uuid":"u1"}`},
		{"summary without text", `{"type":"summary"}`},
		{"progress without uuid", `{"type":"progress","toolUseID":"t1"}`},
		{"json array", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := DecodeLines([]byte(tt.line))
			if len(entries) != 0 {
				t.Errorf("DecodeLines(%q) kept %d entries, want 0", tt.line, len(entries))
			}
		})
	}
}

func TestDecodeLines_PreservesFileOrder(t *testing.T) {
	data := `{"type":"user","uuid":"u1","message":{"role":"user","content":"a"}}
garbage line
{"type":"user","uuid":"u2","message":{"role":"user","content":"b"}}

{"type":"user","uuid":"u3","message":{"role":"user","content":"c"}}`

	entries := DecodeLines([]byte(data))
	if len(entries) != 3 {
		t.Fatalf("decoded %d entries, want 3", len(entries))
	}
	for i, want := range []string{"u1", "u2", "u3"} {
		if entries[i].UUID != want {
			t.Errorf("entry %d UUID = %q, want %q", i, entries[i].UUID, want)
		}
	}
}

func TestParentToolUseID_SpellingPriority(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			"top-level parentToolUseID wins",
			`{"type":"progress","uuid":"p1","parentToolUseID":"t1","toolUseID":"t2","data":{"parentToolUseId":"t3"}}`,
			"t1",
		},
		{
			"top-level toolUseID next",
			`{"type":"progress","uuid":"p1","toolUseID":"t2","data":{"parentToolUseId":"t3"}}`,
			"t2",
		},
		{
			"nested data spelling last",
			`{"type":"progress","uuid":"p1","data":{"parentToolUseId":"t3"}}`,
			"t3",
		},
		{
			"no spelling present",
			`{"type":"progress","uuid":"p1","data":{"prompt":"x"}}`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := DecodeLines([]byte(tt.line))
			if len(entries) != 1 {
				t.Fatalf("decoded %d entries, want 1", len(entries))
			}
			if got := entries[0].ParentToolUseID(); got != tt.want {
				t.Errorf("ParentToolUseID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAgentID_PrefersTopLevel(t *testing.T) {
	entries := DecodeLines([]byte(
		`{"type":"progress","uuid":"p1","agentId":"agent-top","data":{"agentId":"agent-nested"}}`,
	))
	if len(entries) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(entries))
	}
	if got := entries[0].AgentID(); got != "agent-top" {
		t.Errorf("AgentID() = %q, want agent-top", got)
	}

	entries = DecodeLines([]byte(
		`{"type":"progress","uuid":"p1","data":{"agentId":"agent-nested"}}`,
	))
	if got := entries[0].AgentID(); got != "agent-nested" {
		t.Errorf("AgentID() = %q, want agent-nested", got)
	}
}

func TestIsHook(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"data type hook", `{"type":"progress","uuid":"p1","data":{"type":"hook"}}`, true},
		{"hook event only", `{"type":"progress","uuid":"p1","data":{"hookEvent":"PreToolUse","command":"lint.sh"}}`, true},
		{"agent progress", `{"type":"progress","uuid":"p1","data":{"agentId":"agent-1","prompt":"do it"}}`, false},
		{"no data", `{"type":"progress","uuid":"p1"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := DecodeLines([]byte(tt.line))
			if len(entries) != 1 {
				t.Fatalf("decoded %d entries, want 1", len(entries))
			}
			if got := entries[0].IsHook(); got != tt.want {
				t.Errorf("IsHook() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRawEntryTime(t *testing.T) {
	e := RawEntry{Timestamp: "2025-06-01T10:30:00.500Z"}
	want := time.Date(2025, 6, 1, 10, 30, 0, 500_000_000, time.UTC)
	if got := e.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "not-a-time", "2025-06-01"} {
		e := RawEntry{Timestamp: bad}
		if got := e.Time(); !got.IsZero() {
			t.Errorf("Time() for %q = %v, want zero", bad, got)
		}
	}
}

func FuzzDecodeLines(f *testing.F) {
	f.Add([]byte(`{"type":"user","uuid":"u1","message":{"role":"user","content":"hi"}}`))
	f.Add([]byte("garbage\n\n{broken"))
	f.Add([]byte(`{"type":"progress","uuid":"p1","data":{"parentToolUseId":"t1"}}`))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must never panic, whatever the input.
		entries := DecodeLines(data)
		for i := range entries {
			_ = entries[i].ParentToolUseID()
			_ = entries[i].AgentID()
			_ = entries[i].IsHook()
			_ = entries[i].Time()
		}
	})
}
