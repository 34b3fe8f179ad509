package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks the agent data directory and discovers all JSONL session
// files. Main sessions live at <project>/<session-uuid>.jsonl; sub-agent
// logs live at <project>/<session-uuid>/subagents/agent-<id>.jsonl.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	projectsDir := filepath.Join(dataDir, "projects")

	info, err := os.Stat(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			return nil
		}

		rel, _ := filepath.Rel(projectsDir, path)
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 2 {
			return nil
		}

		projectDir := parts[0]

		df := DiscoveredFile{
			Path:       path,
			Project:    decodeProjectName(projectDir),
			ProjectDir: projectDir,
		}
		if fi, statErr := d.Info(); statErr == nil {
			df.ModTime = fi.ModTime()
		}

		if len(parts) >= 4 && parts[2] == "subagents" {
			df.IsSubagent = true
			df.ParentSession = parts[1]
			// Use parent+agent to avoid collisions across sessions
			df.SessionID = parts[1] + "/" + strings.TrimSuffix(name, ".jsonl")
		} else {
			df.SessionID = strings.TrimSuffix(name, ".jsonl")
		}

		files = append(files, df)
		return nil
	})

	return files, err
}

// FindSession locates a session file by id. The given id may be a prefix;
// the first main-session match wins. Sub-agent ids of the form
// <parent>/agent-<id> match their sub-agent file.
func FindSession(dataDir, sessionID string) (DiscoveredFile, bool, error) {
	files, err := ScanDir(dataDir)
	if err != nil {
		return DiscoveredFile{}, false, err
	}
	for _, f := range files {
		if f.SessionID == sessionID {
			return f, true, nil
		}
	}
	for _, f := range files {
		if strings.HasPrefix(f.SessionID, sessionID) {
			return f, true, nil
		}
	}
	return DiscoveredFile{}, false, nil
}

// SubagentFiles returns the sub-agent log files spawned by a session, keyed
// by agent id (the agent-<id> filename stem).
func SubagentFiles(dataDir, sessionID string) (map[string]DiscoveredFile, error) {
	files, err := ScanDir(dataDir)
	if err != nil {
		return nil, err
	}
	agents := make(map[string]DiscoveredFile)
	for _, f := range files {
		if !f.IsSubagent || f.ParentSession != sessionID {
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(f.Path), ".jsonl")
		agents[stem] = f
	}
	return agents, nil
}

// decodeProjectName extracts a human-readable project name from the encoded
// directory name. The CLI encodes absolute paths by replacing "/" with "-":
//
//	"-Users-tee-projects-gitlore" -> "gitlore"
//	"-Users-tee-projects-my-cool-project" -> "my-cool-project"
//
// We find the last known path component ("projects", "repos", "src", ...)
// and take everything after it. Falls back to the last non-empty segment.
func decodeProjectName(dirName string) string {
	parts := strings.Split(dirName, "-")

	knownParents := map[string]bool{
		"projects": true, "repos": true, "src": true,
		"code": true, "workspace": true, "dev": true,
	}

	for i := len(parts) - 2; i >= 0; i-- {
		if knownParents[strings.ToLower(parts[i])] {
			name := strings.Join(parts[i+1:], "-")
			if name != "" {
				return name
			}
		}
	}

	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}

	return dirName
}

// CountProjects returns the number of unique projects in a set of discovered files.
func CountProjects(files []DiscoveredFile) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Project] = struct{}{}
	}
	return len(seen)
}
