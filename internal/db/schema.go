package db

// SchemaSQL is the complete ledger schema.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository
// tests load it through GetSchemaSQL() instead of declaring their own tables,
// so a column referenced by a repository but missing here fails with
// "no such column" at test time.
//
// When changing it, add a migration in migrations.go as well.
const SchemaSQL = `
-- Runs (one row per stamp or restore)
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL CHECK(kind IN ('stamp', 'restore')),
	dataset_path TEXT NOT NULL,
	backup_path TEXT NOT NULL,
	backup_created INTEGER NOT NULL DEFAULT 0,
	row_count INTEGER NOT NULL DEFAULT 0,
	identifier_count INTEGER NOT NULL DEFAULT 0,
	window_start TEXT,
	window_end TEXT,
	checksum_before TEXT,
	checksum_after TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_dataset_path ON runs(dataset_path);

-- Assignments (identifier -> date, in enumeration order)
CREATE TABLE IF NOT EXISTS assignments (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	identifier TEXT NOT NULL,
	assigned_date TEXT NOT NULL,
	PRIMARY KEY (run_id, position),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
