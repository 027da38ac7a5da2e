package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mini_crm/internal/logger"
	"mini_crm/internal/models"

	"github.com/robfig/cron/v3"
)

// DueSource lists reminders of all users due within (after, upTo].
type DueSource interface {
	DueWindow(ctx context.Context, after, upTo time.Time) ([]models.Reminder, error)
}

// PublishCounter is told about every published reminder.
type PublishCounter interface {
	ReminderPublished()
}

// ReminderNotifier periodically publishes reminder.due events. Each run
// covers the window since the previous run, so a reminder is published once.
type ReminderNotifier struct {
	source  DueSource
	hub     *Hub
	counter PublishCounter
	log     *logger.Logger
	now     func() time.Time

	// scanMu serialises scans so two runs never read the same lastRun.
	scanMu  sync.Mutex
	mu      sync.Mutex
	lastRun time.Time
	cron    *cron.Cron
}

func NewReminderNotifier(source DueSource, hub *Hub, counter PublishCounter, log *logger.Logger) *ReminderNotifier {
	return &ReminderNotifier{
		source:  source,
		hub:     hub,
		counter: counter,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules Scan using a cron spec such as "@every 1m". The first
// window starts now; reminders already overdue at start-up are not replayed.
func (n *ReminderNotifier) Start(ctx context.Context, schedule string) error {
	n.mu.Lock()
	n.lastRun = n.now()
	n.mu.Unlock()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		if _, err := n.Scan(ctx); err != nil {
			n.log.Errorw("reminder scan failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule reminder notifier %q: %w", schedule, err)
	}
	n.cron = c
	c.Start()

	go func() {
		<-ctx.Done()
		n.Stop()
	}()
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (n *ReminderNotifier) Stop() {
	n.mu.Lock()
	c := n.cron
	n.cron = nil
	n.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Scan publishes the reminders that became due since the previous scan and
// returns how many it found.
func (n *ReminderNotifier) Scan(ctx context.Context) (int, error) {
	n.scanMu.Lock()
	defer n.scanMu.Unlock()

	n.mu.Lock()
	after := n.lastRun
	upTo := n.now()
	n.mu.Unlock()

	if !upTo.After(after) {
		return 0, nil
	}

	due, err := n.source.DueWindow(ctx, after, upTo)
	if err != nil {
		// window not advanced, next run retries it
		return 0, err
	}

	for _, rm := range due {
		n.hub.Publish(rm.UserID, Event{Type: EventReminderDue, Data: rm})
		if n.counter != nil {
			n.counter.ReminderPublished()
		}
	}

	n.mu.Lock()
	n.lastRun = upTo
	n.mu.Unlock()

	if len(due) > 0 {
		n.log.Infow("published due reminders", "count", len(due), "after", after, "upTo", upTo)
	}
	return len(due), nil
}
