package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasksync/internal/model"
	"github.com/nhle/tasksync/internal/reminder"
	"github.com/nhle/tasksync/internal/remote"
)

// RemindersMsg is a tea.Msg carrying the reminder events of one tick.
type RemindersMsg struct {
	Events []reminder.Event
}

// NotificationsMsg is a tea.Msg carrying the latest notification poll
// result.
type NotificationsMsg struct {
	Notifications []model.Notification
	Unread        int
}

// AuthErrorMsg is a tea.Msg sent when a poll hits an expired or missing
// credential. The session is invalid; the user must re-authenticate.
type AuthErrorMsg struct {
	Message string
}

// pollTimeout bounds a single background fetch.
const pollTimeout = 15 * time.Second

// tickerFunc creates the interval channel for a poll loop and returns a
// release func. Tests swap it out to drive ticks without the wall clock.
type tickerFunc func(d time.Duration) (<-chan time.Time, func())

func newWallTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Poller runs the two background cadences: the reminder tick and the
// unread-notification poll. The intervals are independent; each loop
// owns its ticker and both stop through one shared channel.
type Poller struct {
	syncer            *Syncer
	repo              remote.Repository
	reminderEvery     time.Duration
	notificationEvery time.Duration
	now               func() time.Time
	newTicker         tickerFunc
	resultCh          chan tea.Msg
	triggerCh         chan struct{}
	stopCh            chan struct{}
	mu                gosync.Mutex
	running           bool
}

// NewPoller creates a Poller with the given cadences. Non-positive
// intervals fall back to the defaults (60s reminders, 30s notifications).
func NewPoller(
	s *Syncer,
	repo remote.Repository,
	reminderEvery time.Duration,
	notificationEvery time.Duration,
) *Poller {
	if reminderEvery <= 0 {
		reminderEvery = 60 * time.Second
	}
	if notificationEvery <= 0 {
		notificationEvery = 30 * time.Second
	}
	return &Poller{
		syncer:            s,
		repo:              repo,
		reminderEvery:     reminderEvery,
		notificationEvery: notificationEvery,
		now:               time.Now,
		newTicker:         newWallTicker,
		resultCh:          make(chan tea.Msg, 16),
		triggerCh:         make(chan struct{}, 1),
		stopCh:            make(chan struct{}),
	}
}

// Repository returns the remote repository the poller reads from.
func (p *Poller) Repository() remote.Repository {
	return p.repo
}

// Start launches both polling goroutines and returns a subscription
// command that delivers poll results to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.reminderLoop()
	go p.notificationLoop()

	return p.waitForResult()
}

// Stop halts both polling goroutines.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// RefreshNotifications triggers an immediate notification poll.
func (p *Poller) RefreshNotifications() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// reminderLoop evaluates reminders once immediately and then on every
// tick.
func (p *Poller) reminderLoop() {
	tick, release := p.newTicker(p.reminderEvery)
	defer release()

	p.reminderPass()

	for {
		select {
		case <-p.stopCh:
			return
		case <-tick:
			p.reminderPass()
		}
	}
}

// notificationLoop polls the unread notifications once immediately and
// then on every tick or manual trigger.
func (p *Poller) notificationLoop() {
	tick, release := p.newTicker(p.notificationEvery)
	defer release()

	p.notificationPass()

	for {
		select {
		case <-p.stopCh:
			return
		case <-tick:
			p.notificationPass()
		case <-p.triggerCh:
			p.notificationPass()
		}
	}
}

// reminderPass runs one reminder evaluation. It prefers the repository's
// reminder endpoint and falls back to evaluating the local snapshot when
// the call fails. Tasks still inside the window fire again on the next
// pass; there is no cross-tick de-duplication.
func (p *Poller) reminderPass() {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	tasks, err := p.repo.Reminders(ctx)
	if err != nil {
		if remote.IsAuthError(err) {
			p.sendResult(AuthErrorMsg{Message: err.Error()})
			return
		}
		tasks = p.syncer.Store().Snapshot()
	}

	events := reminder.Evaluate(tasks, p.now())
	if len(events) > 0 {
		p.sendResult(RemindersMsg{Events: events})
	}
}

// notificationPass fetches the notification list and reports the unread
// count.
func (p *Poller) notificationPass() {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	notifications, err := p.repo.Notifications(ctx)
	if err != nil {
		if remote.IsAuthError(err) {
			p.sendResult(AuthErrorMsg{Message: err.Error()})
		}
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	p.sendResult(NotificationsMsg{
		Notifications: notifications,
		Unread:        unread,
	})
}

// sendResult delivers a message without blocking the poll loop.
func (p *Poller) sendResult(msg tea.Msg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the poller.
	}
}

// waitForResult returns a tea.Cmd that waits for the next poll result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next poll
// result. Call after processing a poll message to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
