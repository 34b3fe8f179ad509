package source

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates a projects/ layout under a temp dir and returns the
// data dir root.
func writeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, "projects", filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(`{"type":"user","uuid":"u1","message":{"role":"user","content":"x"}}`+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanDir_MainAndSubagentFiles(t *testing.T) {
	root := writeTree(t,
		"-home-tee-projects-gitlore/abc-123.jsonl",
		"-home-tee-projects-gitlore/abc-123/subagents/agent-x1.jsonl",
		"-home-tee-projects-gitlore/notes.txt", // ignored: not .jsonl
	)
	files, err := ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2 (main + subagent)", len(files))
	}

	var main, sub *DiscoveredFile
	for i := range files {
		if files[i].IsSubagent {
			sub = &files[i]
		} else {
			main = &files[i]
		}
	}
	if main == nil || sub == nil {
		t.Fatalf("missing main or subagent: %+v", files)
	}

	if main.SessionID != "abc-123" {
		t.Errorf("main SessionID = %q, want abc-123", main.SessionID)
	}
	if main.Project != "gitlore" {
		t.Errorf("Project = %q, want gitlore", main.Project)
	}
	if main.ModTime.IsZero() {
		t.Error("main ModTime is zero, want stat time")
	}

	if sub.ParentSession != "abc-123" {
		t.Errorf("sub ParentSession = %q, want abc-123", sub.ParentSession)
	}
	if sub.SessionID != "abc-123/agent-x1" {
		t.Errorf("sub SessionID = %q, want abc-123/agent-x1", sub.SessionID)
	}
}

func TestScanDir_MissingDirIsEmpty(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ScanDir on missing dir: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("found %d files in missing dir, want 0", len(files))
	}
}

func TestFindSession_PrefixMatch(t *testing.T) {
	root := writeTree(t,
		"-home-tee-projects-gitlore/abc-123-full-uuid.jsonl",
		"-home-tee-projects-gitlore/def-456.jsonl",
	)

	df, ok, err := FindSession(root, "abc-123")
	if err != nil {
		t.Fatalf("FindSession: %v", err)
	}
	if !ok {
		t.Fatal("session not found by prefix")
	}
	if df.SessionID != "abc-123-full-uuid" {
		t.Errorf("SessionID = %q, want abc-123-full-uuid", df.SessionID)
	}

	if _, ok, _ := FindSession(root, "zzz"); ok {
		t.Error("found a session for nonexistent prefix")
	}
}

func TestSubagentFiles(t *testing.T) {
	root := writeTree(t,
		"-home-tee-projects-gitlore/abc.jsonl",
		"-home-tee-projects-gitlore/abc/subagents/agent-one.jsonl",
		"-home-tee-projects-gitlore/abc/subagents/agent-two.jsonl",
		"-home-tee-projects-gitlore/other/subagents/agent-three.jsonl",
	)

	agents, err := SubagentFiles(root, "abc")
	if err != nil {
		t.Fatalf("SubagentFiles: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("found %d agents, want 2", len(agents))
	}
	for _, id := range []string{"agent-one", "agent-two"} {
		if _, ok := agents[id]; !ok {
			t.Errorf("agent %q missing from map", id)
		}
	}
}

func TestDecodeProjectName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-Users-tee-projects-gitlore", "gitlore"},
		{"-Users-tee-projects-my-cool-project", "my-cool-project"},
		{"-home-dev-src-widget", "widget"},
		{"-opt-standalone", "standalone"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := decodeProjectName(tt.in); got != tt.want {
			t.Errorf("decodeProjectName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountProjects(t *testing.T) {
	files := []DiscoveredFile{
		{Project: "a"}, {Project: "a"}, {Project: "b"},
	}
	if got := CountProjects(files); got != 2 {
		t.Errorf("CountProjects = %d, want 2", got)
	}
}
