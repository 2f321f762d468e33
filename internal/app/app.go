// Package app drives the refresh cycle: fetch schedules for every
// tracked queue, reconcile and evaluate them, detect changes against
// the stored copy, and hand due notifications to the delivery layer.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/powerschedule/powerschedule/internal/config"
	"github.com/powerschedule/powerschedule/internal/database"
	"github.com/powerschedule/powerschedule/internal/notify"
	"github.com/powerschedule/powerschedule/internal/schedule"
	"github.com/powerschedule/powerschedule/internal/timeutil"
	"github.com/powerschedule/powerschedule/pkg/models"
)

// Fetcher retrieves raw daily schedules for a queue number.
type Fetcher interface {
	FetchSchedules(ctx context.Context, queueNumber string) ([]models.ScheduleData, error)
}

// QueueStatus is the outcome of refreshing one queue.
type QueueStatus struct {
	Queue     models.PowerQueue
	Selection schedule.DaySelection
	State     schedule.PowerState
	Changed   bool
}

// App coordinates fetch, persistence and notification for all queues.
type App struct {
	cfg      *config.Config
	fetcher  Fetcher
	db       *database.DB
	notifier notify.Notifier
	logger   *log.Logger

	// now is the injected clock; tests override it.
	now func() time.Time

	// sentAlerts dedupes shutdown alerts across refresh cycles,
	// keyed by queue id + fire instant.
	sentAlerts map[string]struct{}
}

func NewApp(cfg *config.Config, fetcher Fetcher, db *database.DB, notifier notify.Notifier, logger *log.Logger) *App {
	return &App{
		cfg:        cfg,
		fetcher:    fetcher,
		db:         db,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
		sentAlerts: make(map[string]struct{}),
	}
}

// RefreshAll refreshes every queue with auto-update enabled. A failure
// on one queue never aborts the others.
func (a *App) RefreshAll(ctx context.Context) {
	queues, err := a.db.ListQueues()
	if err != nil {
		a.logger.Printf("listing queues: %v", err)
		return
	}

	for _, q := range queues {
		if !q.AutoUpdateEnabled {
			continue
		}
		if _, err := a.RefreshQueue(ctx, q); err != nil {
			a.logger.Printf("refreshing queue %s (%s): %v", q.Name, q.QueueNumber, err)
		}
	}
}

// RefreshQueue fetches and evaluates one queue, persists the schedule
// blob, and sends any notifications that came due.
func (a *App) RefreshQueue(ctx context.Context, q models.PowerQueue) (*QueueStatus, error) {
	schedules, err := a.fetcher.FetchSchedules(ctx, q.QueueNumber)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}

	now := a.now()
	selection := schedule.Reconcile(schedules, now)

	status := &QueueStatus{Queue: q, Selection: selection}
	if selection.First == nil {
		return status, nil
	}

	first := *selection.First
	isToday := schedule.IsToday(first, now)
	status.State = schedule.Evaluate(first, isToday, timeutil.Minutes(now.Hour(), now.Minute()))

	changed, err := a.persistAndDiff(q, first)
	if err != nil {
		return nil, err
	}
	status.Changed = changed
	if changed {
		if err := a.notifier.ScheduleChanged(q); err != nil {
			a.logger.Printf("notifying schedule change for %s: %v", q.Name, err)
		}
	}

	if q.NotificationsEnabled && isToday {
		a.dispatchDueAlerts(q, first.Shutdowns, now)
	}

	return status, nil
}

// persistAndDiff saves the display day's shutdown list and reports
// whether it differs from the previously stored blob. The very first
// save is not a change.
func (a *App) persistAndDiff(q models.PowerQueue, data models.ScheduleData) (bool, error) {
	payload, err := json.Marshal(data.Shutdowns)
	if err != nil {
		return false, fmt.Errorf("encoding shutdowns: %w", err)
	}

	stored, err := a.db.LoadSchedule(q.ID)
	if err != nil {
		return false, fmt.Errorf("loading stored schedule: %w", err)
	}

	changed := stored != nil && stored.Payload != string(payload)

	if err := a.db.SaveSchedule(q.ID, string(payload), data.EventDate); err != nil {
		return false, fmt.Errorf("saving schedule: %w", err)
	}

	return changed, nil
}

// dispatchDueAlerts sends shutdown alerts whose fire instant falls
// within the next refresh interval, so each alert goes out on the last
// refresh before it is due. Alerts already sent for the same instant
// are skipped.
func (a *App) dispatchDueAlerts(q models.PowerQueue, shutdowns []models.Shutdown, now time.Time) {
	lead := a.cfg.GetLeadMinutes()
	horizon := time.Duration(a.cfg.GetUpdateInterval()) * time.Minute

	for _, fire := range schedule.FireTimes(shutdowns, lead, now, now) {
		if fire.At.After(now.Add(horizon)) {
			continue
		}
		key := q.ID + "|" + fire.At.Format(time.RFC3339)
		if _, done := a.sentAlerts[key]; done {
			continue
		}
		a.sentAlerts[key] = struct{}{}

		if err := a.notifier.ShutdownAlert(q, fire.Shutdown.From, schedule.LeadText(lead)); err != nil {
			a.logger.Printf("sending shutdown alert for %s: %v", q.Name, err)
		}
	}
}
