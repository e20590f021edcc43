package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nhle/tasksync/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSaveAndLoadTasks(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{
			ID:              "1",
			Title:           "with due date",
			Description:     "details",
			DueDate:         &due,
			Priority:        model.PriorityHigh,
			Category:        "Work",
			Completed:       true,
			ReminderEnabled: false,
			Origin:          model.OriginServer,
			CreatedAt:       created,
			UpdatedAt:       created.Add(time.Hour),
		},
		{
			ID:              "local-uuid",
			Title:           "pending entry",
			Priority:        model.PriorityMedium,
			Category:        model.DefaultCategory,
			ReminderEnabled: true,
			Origin:          model.OriginLocal,
			CreatedAt:       created.Add(time.Minute),
		},
	}

	if err := c.SaveTasks(ctx, tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	loaded, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(loaded))
	}

	first := loaded[0]
	if first.ID != "1" || first.Title != "with due date" {
		t.Errorf("first = %+v, want task 1", first)
	}
	if !first.Completed || first.ReminderEnabled {
		t.Errorf("flags = completed=%v reminder=%v, want true/false",
			first.Completed, first.ReminderEnabled)
	}
	if first.DueDate == nil || !first.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", first.DueDate, due)
	}
	if first.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q, want high", first.Priority)
	}

	second := loaded[1]
	if second.Origin != model.OriginLocal {
		t.Errorf("Origin = %q, want local round-tripped", second.Origin)
	}
	if second.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", second.DueDate)
	}
}

func TestSaveTasksReplacesSnapshot(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	old := model.Task{ID: "1", Title: "old", CreatedAt: time.Now().UTC()}
	if err := c.SaveTasks(ctx, []model.Task{old}); err != nil {
		t.Fatalf("first SaveTasks: %v", err)
	}

	replacement := model.Task{ID: "2", Title: "new", CreatedAt: time.Now().UTC()}
	if err := c.SaveTasks(ctx, []model.Task{replacement}); err != nil {
		t.Fatalf("second SaveTasks: %v", err)
	}

	loaded, err := c.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "2" {
		t.Errorf("loaded = %+v, want only task 2", loaded)
	}
}

func TestLoadTasksEmptyCache(t *testing.T) {
	c := openTestCache(t)

	loaded, err := c.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks on empty cache: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d tasks from empty cache, want 0", len(loaded))
	}
}

func TestLastFetchedAt(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	fetchedAt, err := c.LastFetchedAt(ctx)
	if err != nil {
		t.Fatalf("LastFetchedAt before save: %v", err)
	}
	if !fetchedAt.IsZero() {
		t.Errorf("fetchedAt = %v before any save, want zero", fetchedAt)
	}

	before := time.Now().UTC().Add(-time.Second)
	if err := c.SaveTasks(ctx, nil); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	fetchedAt, err = c.LastFetchedAt(ctx)
	if err != nil {
		t.Fatalf("LastFetchedAt after save: %v", err)
	}
	if fetchedAt.Before(before) {
		t.Errorf("fetchedAt = %v, want recent timestamp", fetchedAt)
	}
}
