// Package cache persists the last-known task list to a local SQLite
// database. It is written on every successful fetch and read only when a
// fetch fails, trading freshness for availability in offline-degraded
// mode.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/tasksync/internal/model"
)

// snapshotKey names the single cached task list in fetch_meta.
const snapshotKey = "tasks"

// Cache is the SQLite-backed offline copy of the task list.
type Cache struct {
	db *sqlx.DB
}

// Open opens (or creates) the cache database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func Open(dbPath string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	// WAL keeps reads cheap while the poller writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *Cache) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveTasks replaces the cached task list with the given one. The write
// is transactional so a crash never leaves a half-replaced snapshot.
func (c *Cache) SaveTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing cached tasks: %w", err)
	}

	const query = `
		INSERT INTO tasks (
			id, title, description, due_date,
			priority, category, completed, reminder_enabled,
			origin, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		var dueDate *time.Time
		if t.DueDate != nil {
			utc := t.DueDate.UTC()
			dueDate = &utc
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.Description, dueDate,
			string(t.Priority), t.Category,
			boolToInt(t.Completed), boolToInt(t.ReminderEnabled),
			string(t.Origin), t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("caching task %s: %w", t.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO fetch_meta (key, fetched_at) VALUES (?, ?)",
		snapshotKey, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording fetch time: %w", err)
	}

	return tx.Commit()
}

// LoadTasks returns the cached task list in its stored order. An empty
// cache yields an empty slice, not an error.
func (c *Cache) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := c.db.QueryxContext(ctx,
		"SELECT * FROM tasks ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying cached tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// LastFetchedAt returns when the cached snapshot was written, or the
// zero time when no snapshot exists.
func (c *Cache) LastFetchedAt(ctx context.Context) (time.Time, error) {
	var fetchedAt time.Time
	err := c.db.GetContext(ctx, &fetchedAt,
		"SELECT fetched_at FROM fetch_meta WHERE key = ?", snapshotKey,
	)
	if err != nil {
		// Missing row means nothing has been cached yet.
		return time.Time{}, nil
	}
	return fetchedAt, nil
}

// scanTask scans one cached task row.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task      model.Task
		dueDate   *time.Time
		priority  string
		completed int
		reminder  int
		origin    string
		createdAt time.Time
		updatedAt *time.Time
	)

	err := rows.Scan(
		&task.ID, &task.Title, &task.Description, &dueDate,
		&priority, &task.Category, &completed, &reminder,
		&origin, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning cached task row: %w", err)
	}

	task.DueDate = dueDate
	task.Priority = model.Priority(priority)
	task.Completed = completed != 0
	task.ReminderEnabled = reminder != 0
	task.Origin = model.Origin(origin)
	task.CreatedAt = createdAt
	if updatedAt != nil {
		task.UpdatedAt = *updatedAt
	}

	return task.Normalize(), nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
