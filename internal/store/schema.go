package store

// schemaSQL creates the cache tables. file_tracker drives the change diff;
// sessions holds the derived per-session stats so unchanged files skip the
// parse entirely.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id     TEXT PRIMARY KEY,
	project        TEXT NOT NULL DEFAULT '',
	file_path      TEXT NOT NULL,
	is_subagent    INTEGER NOT NULL DEFAULT 0,
	parent_session TEXT NOT NULL DEFAULT '',
	summary        TEXT NOT NULL DEFAULT '',
	start_time     TEXT NOT NULL DEFAULT '',
	end_time       TEXT NOT NULL DEFAULT '',
	duration_ms    INTEGER NOT NULL DEFAULT 0,
	prompt_count   INTEGER NOT NULL DEFAULT 0,
	message_count  INTEGER NOT NULL DEFAULT 0,
	tool_calls     INTEGER NOT NULL DEFAULT 0,
	total_pages    INTEGER NOT NULL DEFAULT 0,
	total_cost_usd REAL NOT NULL DEFAULT 0,
	parsed_at      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_sessions_file_path ON sessions(file_path);
CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project);

CREATE TABLE IF NOT EXISTS file_tracker (
	file_path  TEXT PRIMARY KEY,
	mtime_ns   INTEGER NOT NULL,
	size_bytes INTEGER NOT NULL
);
`
