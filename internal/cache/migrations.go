package cache

// migration is a single versioned schema change.
type migration struct {
	version int
	sql     string
}

// migrations are applied in order; each records its version in
// schema_version inside the same statement batch.
var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS tasks (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				due_date TIMESTAMP,
				priority TEXT NOT NULL DEFAULT 'medium',
				category TEXT NOT NULL DEFAULT 'General',
				completed INTEGER NOT NULL DEFAULT 0,
				reminder_enabled INTEGER NOT NULL DEFAULT 1,
				origin TEXT NOT NULL DEFAULT 'server',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP
			);

			CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
	{
		version: 2,
		sql: `
			CREATE TABLE IF NOT EXISTS fetch_meta (
				key TEXT PRIMARY KEY,
				fetched_at TIMESTAMP NOT NULL
			);

			INSERT INTO schema_version (version) VALUES (2);
		`,
	},
}
