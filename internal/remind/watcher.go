package remind

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/deskcal/internal/events"
	"github.com/julianstephens/deskcal/internal/logger"
	"github.com/julianstephens/deskcal/internal/models"
)

// Notifier receives each newly due event exactly once per day.
type Notifier func(models.Event)

// Watcher polls the query engine for due reminders on a cron schedule and
// fans them out to a notifier. The engine itself stays poll-driven; this is
// the periodic tick the host owes it.
type Watcher struct {
	query  *events.Query
	notify Notifier
	clock  func() time.Time
	cron   *cron.Cron

	// fired maps event id -> date last notified, so an event due for
	// several consecutive polls inside the tolerance window only fires once.
	fired map[string]string
}

// New builds a watcher over the given query engine. A nil clock defaults to
// time.Now.
func New(query *events.Query, notify Notifier, clock func() time.Time) *Watcher {
	if clock == nil {
		clock = time.Now
	}
	return &Watcher{
		query:  query,
		notify: notify,
		clock:  clock,
		fired:  make(map[string]string),
	}
}

// Start schedules Check on the given cron expression (standard 5-field
// syntax) and begins polling.
func (w *Watcher) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, w.Check); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	w.cron = c
	c.Start()
	logger.Info("reminder watcher started", "schedule", spec)
	return nil
}

// Stop halts polling. Safe to call before Start.
func (w *Watcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// Check runs one poll, notifying for every due event that has not already
// fired today.
func (w *Watcher) Check() {
	now := w.clock()
	today := now.Format("2006-01-02")

	for _, ev := range w.query.DueReminders(now) {
		if w.fired[ev.ID] == today {
			continue
		}
		w.fired[ev.ID] = today
		logger.Debug("reminder due", "id", ev.ID, "title", ev.Title, "time", ev.Time)
		w.notify(ev)
	}
}
