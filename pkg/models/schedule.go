package models

import (
	"github.com/google/uuid"

	"github.com/powerschedule/powerschedule/internal/timeutil"
)

// TimelineHours is the number of slots in the per-day visual timeline.
const TimelineHours = 24

// PowerQueue is a user-registered outage rotation group.
type PowerQueue struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	QueueNumber          string `json:"queueNumber"` // e.g. "4.2"
	NotificationsEnabled bool   `json:"isNotificationsEnabled"`
	AutoUpdateEnabled    bool   `json:"isAutoUpdateEnabled"`
}

// NewPowerQueue creates a queue with a fresh identity. Auto-update is on
// by default, notifications are opt-in.
func NewPowerQueue(name, queueNumber string) PowerQueue {
	return PowerQueue{
		ID:                uuid.NewString(),
		Name:              name,
		QueueNumber:       queueNumber,
		AutoUpdateEnabled: true,
	}
}

// Shutdown is a single scheduled outage window within one day.
// From and To are "HH:MM" provider strings; Hours is an opaque display
// label and is never derived locally.
type Shutdown struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Hours string `json:"shutdownHours"`
}

// DurationMinutes returns To minus From in minutes. Parse failure on
// either endpoint yields zero. A negative result (to before from) is
// preserved as-is; callers clamp for display.
func (s Shutdown) DurationMinutes() int {
	from, err := timeutil.ParseClock(s.From)
	if err != nil {
		return 0
	}
	to, err := timeutil.ParseClock(s.To)
	if err != nil {
		return 0
	}
	return to - from
}

// ScheduleResponse is the raw provider payload for one calendar day.
// The queues map is keyed by queue number.
type ScheduleResponse struct {
	EventDate             string                `json:"eventDate"`
	CreatedAt             string                `json:"createdAt"`
	ScheduleApprovedSince string                `json:"scheduleApprovedSince"`
	Queues                map[string][]Shutdown `json:"queues"`
}

// ScheduleData is one day's outage list for a single queue.
// Shutdowns keep provider order; they are never re-sorted.
type ScheduleData struct {
	EventDate     string     `json:"eventDate"` // DD.MM.YYYY
	CreatedAt     string     `json:"createdAt"`
	ApprovedSince string     `json:"approvedSince"`
	Shutdowns     []Shutdown `json:"shutdowns"`
}

// TotalOutageMinutes sums shutdown durations, counting malformed or
// negative-duration entries as zero.
func (d ScheduleData) TotalOutageMinutes() int {
	total := 0
	for _, s := range d.Shutdowns {
		if m := s.DurationMinutes(); m > 0 {
			total += m
		}
	}
	return total
}

// TotalHours returns the whole hours of TotalOutageMinutes.
func (d ScheduleData) TotalHours() int {
	return d.TotalOutageMinutes() / 60
}

// RemainingMinutes returns the minutes of TotalOutageMinutes past the
// last whole hour.
func (d ScheduleData) RemainingMinutes() int {
	return d.TotalOutageMinutes() % 60
}

// HourlyTimeline returns exactly TimelineHours booleans, index =
// hour-of-day, true meaning power on. An hour is off when any shutdown's
// [fromHour, toHour) range covers it, end clamped to 24. This is an
// hour-granularity approximation, not minute-exact.
func (d ScheduleData) HourlyTimeline() []bool {
	timeline := make([]bool, TimelineHours)
	for i := range timeline {
		timeline[i] = true
	}

	for _, s := range d.Shutdowns {
		from, err := timeutil.ParseClock(s.From)
		if err != nil {
			continue
		}
		to, err := timeutil.ParseClock(s.To)
		if err != nil {
			continue
		}

		fromHour := from / 60
		if fromHour < 0 {
			fromHour = 0
		}
		toHour := to / 60
		if toHour > TimelineHours {
			toHour = TimelineHours
		}
		for hour := fromHour; hour < toHour; hour++ {
			timeline[hour] = false
		}
	}

	return timeline
}
