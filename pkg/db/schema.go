package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Archives table: one row per archive attempt
CREATE TABLE IF NOT EXISTS archives (
    archive_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    filename TEXT,
    title TEXT,
    word_count INTEGER DEFAULT 0,
    assets_total INTEGER DEFAULT 0,
    assets_failed INTEGER DEFAULT 0,
    status TEXT NOT NULL,          -- success | error
    error_type TEXT,               -- fetch_error, extract_error, convert_error, package_error, save_error
    error_message TEXT,
    top_keywords TEXT,             -- comma-separated "word:count" pairs
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_archives_url ON archives(url);
CREATE INDEX IF NOT EXISTS idx_archives_created_at ON archives(created_at);
`
