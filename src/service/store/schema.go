package store

const schema = `
-- Append-only run summaries. Records are never updated or deleted.
CREATE TABLE IF NOT EXISTS analysis_runs (
    id TEXT PRIMARY KEY,
    timestamp DATETIME NOT NULL,
    file_count INTEGER NOT NULL,
    issues_detected INTEGER NOT NULL,
    issues_fixed INTEGER NOT NULL,
    predictions_made INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    success_rate REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON analysis_runs(timestamp);

-- Longitudinal per-pattern counters, updated incrementally after each run.
CREATE TABLE IF NOT EXISTS pattern_stats (
    pattern_id TEXT PRIMARY KEY,
    frequency INTEGER NOT NULL DEFAULT 0,
    severity TEXT NOT NULL,
    last_seen DATETIME NOT NULL,
    fixed_count INTEGER NOT NULL DEFAULT 0
);
`
