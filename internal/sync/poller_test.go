package sync

import (
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/remote"
	"github.com/nhle/tasksync/internal/store"
)

// manualTicks replaces the poller's wall-clock tickers with buffered
// channels the test feeds by hand.
type manualTicks struct {
	reminder     chan time.Time
	notification chan time.Time
	released     atomic.Int32
}

// newTestPoller builds a poller over the fake repository with manual
// tickers and a pinned clock. The intervals differ so the ticker factory
// can tell the two loops apart.
func newTestPoller(repo *fakeRepo) (*Poller, *manualTicks) {
	s := New(store.New(), repo, nil)
	s.SetClock(func() time.Time { return testNow })

	p := NewPoller(s, repo, time.Hour, time.Minute)
	p.now = func() time.Time { return testNow }

	mt := &manualTicks{
		reminder:     make(chan time.Time, 1),
		notification: make(chan time.Time, 1),
	}
	p.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		release := func() { mt.released.Add(1) }
		if d == p.reminderEvery {
			return mt.reminder, release
		}
		return mt.notification, release
	}
	return p, mt
}

// nextMsg reads one poll result or fails the test.
func nextMsg(t *testing.T, p *Poller) tea.Msg {
	t.Helper()
	select {
	case msg := <-p.resultCh:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll result")
		return nil
	}
}

// drainInitialPasses consumes the messages both loops emit on startup:
// one RemindersMsg (when events exist) and one NotificationsMsg, in
// either order.
func drainInitialPasses(t *testing.T, p *Poller, wantReminder bool) (RemindersMsg, NotificationsMsg) {
	t.Helper()

	var reminders RemindersMsg
	var notifications NotificationsMsg

	n := 1
	if wantReminder {
		n = 2
	}
	for i := 0; i < n; i++ {
		switch msg := nextMsg(t, p).(type) {
		case RemindersMsg:
			reminders = msg
		case NotificationsMsg:
			notifications = msg
		default:
			t.Fatalf("unexpected initial message %T", msg)
		}
	}
	return reminders, notifications
}

func dueSoonTask() model.Task {
	due := testNow.Add(5 * time.Hour)
	t := serverTask("1", "due soon")
	t.DueDate = &due
	t.ReminderEnabled = true
	return t
}

func TestPollerRunsBothPassesImmediately(t *testing.T) {
	repo := newFakeRepo()
	repo.tasks = []model.Task{dueSoonTask()}
	repo.notifications = []model.Notification{
		{ID: "1", Message: "due soon", Read: false},
		{ID: "2", Message: "old", Read: true},
	}

	p, _ := newTestPoller(repo)
	p.Start()
	defer p.Stop()

	reminders, notifications := drainInitialPasses(t, p, true)

	if len(reminders.Events) != 1 {
		t.Fatalf("got %d reminder events, want 1", len(reminders.Events))
	}
	if reminders.Events[0].HoursLeft != 5 {
		t.Errorf("HoursLeft = %d, want 5", reminders.Events[0].HoursLeft)
	}
	if notifications.Unread != 1 {
		t.Errorf("Unread = %d, want 1", notifications.Unread)
	}
	if len(notifications.Notifications) != 2 {
		t.Errorf("got %d notifications, want 2", len(notifications.Notifications))
	}
}

func TestPollerTickDrivesReminderPass(t *testing.T) {
	repo := newFakeRepo()
	repo.tasks = []model.Task{dueSoonTask()}

	p, mt := newTestPoller(repo)
	p.Start()
	defer p.Stop()

	drainInitialPasses(t, p, true)

	mt.reminder <- testNow
	msg, ok := nextMsg(t, p).(RemindersMsg)
	if !ok {
		t.Fatalf("tick produced %T, want RemindersMsg", msg)
	}
	if len(msg.Events) != 1 {
		t.Errorf("got %d events on tick, want 1", len(msg.Events))
	}
}

func TestPollerManualTriggerRefreshesNotifications(t *testing.T) {
	repo := newFakeRepo()
	repo.notifications = []model.Notification{{ID: "1", Read: false}}

	p, _ := newTestPoller(repo)
	p.Start()
	defer p.Stop()

	drainInitialPasses(t, p, false)

	p.RefreshNotifications()
	msg, ok := nextMsg(t, p).(NotificationsMsg)
	if !ok {
		t.Fatalf("trigger produced %T, want NotificationsMsg", msg)
	}
	if msg.Unread != 1 {
		t.Errorf("Unread = %d, want 1", msg.Unread)
	}
}

func TestPollerStopReleasesBothLoops(t *testing.T) {
	repo := newFakeRepo()
	repo.notifications = []model.Notification{{ID: "1", Read: false}}

	p, mt := newTestPoller(repo)
	p.Start()
	drainInitialPasses(t, p, false)

	p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for mt.released.Load() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("released %d tickers after Stop, want 2", mt.released.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A tick after Stop must not produce another pass.
	mt.notification <- testNow
	select {
	case msg := <-p.resultCh:
		t.Fatalf("got %T after Stop, want none", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPollerReminderAuthErrorEscalates(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = &remote.AuthError{Message: "session expired"}

	p, _ := newTestPoller(repo)
	p.Start()
	defer p.Stop()

	// The notification loop still reports; the reminder loop escalates.
	sawAuth := false
	for i := 0; i < 2; i++ {
		if _, ok := nextMsg(t, p).(AuthErrorMsg); ok {
			sawAuth = true
		}
	}
	if !sawAuth {
		t.Error("no AuthErrorMsg delivered for an expired session")
	}
}
