// Package store provides a SQLite-backed cache for parsed session stats.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ccview/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed session caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveSession stores a parsed session and its file tracking info.
func (c *Cache) SaveSession(s model.SessionStats, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	startTime := ""
	if !s.StartTime.IsZero() {
		startTime = s.StartTime.UTC().Format(time.RFC3339Nano)
	}
	endTime := ""
	if !s.EndTime.IsZero() {
		endTime = s.EndTime.UTC().Format(time.RFC3339Nano)
	}

	isSubagent := 0
	if s.IsSubagent {
		isSubagent = 1
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO sessions
		(session_id, project, file_path, is_subagent, parent_session, summary,
		 start_time, end_time, duration_ms, prompt_count, message_count,
		 tool_calls, total_pages, total_cost_usd, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Project, s.FilePath, isSubagent, s.ParentSession, s.Summary,
		startTime, endTime, s.DurationMs, s.PromptCount, s.MessageCount,
		s.ToolCallCount, s.TotalPages, s.TotalCostUSD, now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes)
		VALUES (?, ?, ?)`, s.FilePath, mtimeNs, sizeBytes)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadAllSessions reads all cached sessions from the database.
func (c *Cache) LoadAllSessions() ([]model.SessionStats, error) {
	rows, err := c.db.Query(`SELECT
		session_id, project, file_path, is_subagent, parent_session, summary,
		start_time, end_time, duration_ms, prompt_count, message_count,
		tool_calls, total_pages, total_cost_usd
		FROM sessions`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []model.SessionStats
	for rows.Next() {
		var s model.SessionStats
		var startStr, endStr string
		var isSubagent int

		err := rows.Scan(
			&s.SessionID, &s.Project, &s.FilePath, &isSubagent, &s.ParentSession, &s.Summary,
			&startStr, &endStr, &s.DurationMs, &s.PromptCount, &s.MessageCount,
			&s.ToolCallCount, &s.TotalPages, &s.TotalCostUSD,
		)
		if err != nil {
			return nil, err
		}

		s.IsSubagent = isSubagent != 0
		if startStr != "" {
			s.StartTime, _ = time.Parse(time.RFC3339Nano, startStr)
		}
		if endStr != "" {
			s.EndTime, _ = time.Parse(time.RFC3339Nano, endStr)
		}

		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Prune removes cached sessions whose files no longer exist on disk.
func (c *Cache) Prune(existing map[string]struct{}) error {
	rows, err := c.db.Query("SELECT file_path FROM file_tracker")
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			_ = rows.Close()
			return err
		}
		if _, ok := existing[path]; !ok {
			stale = append(stale, path)
		}
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, path := range stale {
		if _, err := c.db.Exec("DELETE FROM sessions WHERE file_path = ?", path); err != nil {
			return err
		}
		if _, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path); err != nil {
			return err
		}
	}
	return nil
}
