package store

// schemaSQL is the DDL for all tables. Hints are keyed by the
// document's content hash, not its path, so a renamed or copied file
// still hits the cache while any edit misses it.
const schemaSQL = `
-- Reformatting run audit log
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    input_path TEXT NOT NULL,
    output_path TEXT,
    content_hash TEXT NOT NULL,
    targets INTEGER DEFAULT 0,
    matched INTEGER DEFAULT 0,
    dropped INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0,
    num_id INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Cached per-paragraph classifications from the external classifier
CREATE TABLE IF NOT EXISTS hints (
    content_hash TEXT NOT NULL,
    para_index INTEGER NOT NULL,
    para_type TEXT NOT NULL,
    level INTEGER NOT NULL DEFAULT 0,
    model TEXT DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (content_hash, para_index)
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(content_hash);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
