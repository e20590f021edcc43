// Package sync bridges the in-memory task store to the remote repository
// with optimistic-update and fallback-on-failure semantics, and runs the
// background reminder and notification polls.
package sync

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/tasksync/internal/cache"
	"github.com/nhle/tasksync/internal/insight"
	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/remote"
	"github.com/nhle/tasksync/internal/store"
)

// Syncer translates store mutations into repository calls and reconciles
// the responses back into the store. Failed remote calls fall back to
// local state so the user-visible list never silently drops an attempted
// mutation; the error is recorded on the store and returned alongside
// the locally-applied result.
type Syncer struct {
	store *store.Store
	repo  remote.Repository
	cache *cache.Cache
	now   func() time.Time
}

// New creates a Syncer. The cache may be nil, in which case a failed
// fetch leaves the store empty instead of installing an offline copy.
func New(s *store.Store, repo remote.Repository, c *cache.Cache) *Syncer {
	return &Syncer{
		store: s,
		repo:  repo,
		cache: c,
		now:   time.Now,
	}
}

// SetClock overrides the time source. Tests use this to pin "now".
func (s *Syncer) SetClock(now func() time.Time) {
	s.now = now
}

// Store returns the task store this syncer mutates.
func (s *Syncer) Store() *store.Store {
	return s.store
}

// Refresh performs a full fetch-and-replace. On success the store's
// collection is replaced with the repository's and the offline cache is
// rewritten. On failure the error is recorded and, when an offline copy
// exists, that copy is installed instead.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	tasks, err := s.repo.List(ctx, remote.ListFilter{})
	if err != nil {
		s.store.SetError(fmt.Sprintf("failed to load tasks: %v", err))

		if s.cache != nil {
			cached, cacheErr := s.cache.LoadTasks(ctx)
			if cacheErr == nil && len(cached) > 0 {
				s.store.ReplaceAll(cached)
			}
		}
		return err
	}

	s.store.ReplaceAll(tasks)
	s.store.SetError("")

	if s.cache != nil {
		if cacheErr := s.cache.SaveTasks(ctx, tasks); cacheErr != nil {
			// A failed cache write never fails the fetch itself.
			s.store.SetError(fmt.Sprintf("failed to write offline cache: %v", cacheErr))
		}
	}

	return nil
}

// Create stores a new task remotely and inserts the server-confirmed
// record. When the remote call fails on transport or validation, a
// locally-synthesized record (generated id, current timestamp) is
// inserted instead and the error is returned alongside it. Auth
// failures are escalated without an optimistic insert, since nothing
// will reconcile until the session is valid again.
func (s *Syncer) Create(ctx context.Context, draft model.Task) (model.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return model.Task{}, fmt.Errorf("task title must not be empty")
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		if remote.IsAuthError(err) {
			s.store.SetError(err.Error())
			return model.Task{}, err
		}

		local := draft.Normalize()
		local.ID = uuid.New().String()
		local.Origin = model.OriginLocal
		local.CreatedAt = s.now()
		local.UpdatedAt = local.CreatedAt

		s.store.Insert(local)
		s.store.SetError(fmt.Sprintf("failed to create task remotely: %v", err))
		return local, err
	}

	s.store.Insert(created)
	s.store.SetError("")
	return created, nil
}

// Update applies a patch remotely and replaces the store entry with the
// server-confirmed version. Locally-pending entries and remote failures
// fall back to an optimistic local merge. A remote not-found is treated
// as a no-op success: the local state already reflects the user's
// intent.
func (s *Syncer) Update(
	ctx context.Context,
	id string,
	patch model.TaskPatch,
) (model.Task, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %s not found", id)
	}

	// Pending entries have no server id to address; merge locally and
	// let ReconcilePending push the final shape later.
	if current.Pending() || !isServerID(id) {
		return s.applyLocalPatch(id, patch), nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if remote.IsNotFound(err) {
			s.store.SetError("")
			return s.applyLocalPatch(id, patch), nil
		}

		local := s.applyLocalPatch(id, patch)
		s.store.SetError(fmt.Sprintf("failed to update task remotely: %v", err))
		return local, err
	}

	s.store.Replace(id, updated)
	s.store.SetError("")
	return updated, nil
}

// Delete removes the task locally regardless of the remote outcome; a
// failed remote delete is reported but never resurrects the entry. A
// remote not-found counts as success.
func (s *Syncer) Delete(ctx context.Context, id string) error {
	task, ok := s.store.Get(id)
	pending := ok && (task.Pending() || !isServerID(id))

	var err error
	if !pending {
		err = s.repo.Delete(ctx, id)
		if err != nil && remote.IsNotFound(err) {
			err = nil
		}
	}

	s.store.Remove(id)
	if err != nil {
		s.store.SetError(fmt.Sprintf("failed to delete task remotely: %v", err))
		return err
	}

	s.store.SetError("")
	return nil
}

// ToggleCompleted flips the completion state of a task.
func (s *Syncer) ToggleCompleted(ctx context.Context, id string) (model.Task, error) {
	task, ok := s.store.Get(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %s not found", id)
	}

	completed := !task.Completed
	return s.Update(ctx, id, model.TaskPatch{Completed: &completed})
}

// ToggleReminder flips the reminder flag of a task.
func (s *Syncer) ToggleReminder(ctx context.Context, id string) (model.Task, error) {
	task, ok := s.store.Get(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task %s not found", id)
	}

	enabled := !task.ReminderEnabled
	return s.Update(ctx, id, model.TaskPatch{ReminderEnabled: &enabled})
}

// ReconcilePending retries remote creation of locally-pending entries.
// Each success swaps the pending entry for its server-confirmed record
// under the server-assigned id. Returns how many entries were
// reconciled; stops early on an auth error since every retry would hit
// the same wall.
func (s *Syncer) ReconcilePending(ctx context.Context) (int, error) {
	reconciled := 0
	for _, task := range s.store.Snapshot() {
		if !task.Pending() {
			continue
		}

		created, err := s.repo.Create(ctx, task)
		if err != nil {
			if remote.IsAuthError(err) {
				return reconciled, err
			}
			continue
		}

		s.store.Replace(task.ID, created)
		reconciled++
	}

	if reconciled > 0 {
		s.store.SetError("")
	}
	return reconciled, nil
}

// Insights returns the repository's summary snapshot when available,
// preferring it wholesale over the local computation; on failure the
// metrics are derived from the store's current snapshot. The priority
// distribution is always computed locally because the summary endpoint
// does not carry it.
func (s *Syncer) Insights(ctx context.Context) (model.Insights, model.PriorityDistribution) {
	snapshot := s.store.Snapshot()
	dist := insight.Distribution(snapshot)

	ins, err := s.repo.InsightsSummary(ctx)
	if err != nil {
		return insight.Compute(snapshot, s.now()), dist
	}
	return ins, dist
}

// applyLocalPatch merges a patch into the stored entry and returns the
// result, stamping UpdatedAt with the local clock.
func (s *Syncer) applyLocalPatch(id string, patch model.TaskPatch) model.Task {
	s.store.Update(id, patch)
	task, _ := s.store.Get(id)
	task.UpdatedAt = s.now()
	s.store.Replace(id, task)
	return task
}

// isServerID reports whether the id is a numeric server-assigned id, as
// opposed to a locally-generated UUID.
func isServerID(id string) bool {
	_, err := strconv.ParseInt(id, 10, 64)
	return err == nil
}
