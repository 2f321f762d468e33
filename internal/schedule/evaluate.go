// Package schedule implements the outage-state engine: power-state
// evaluation for a single day, reconciliation of multi-day provider
// responses, and notification fire-time computation. Everything here is
// pure; the caller supplies "now" and "today" explicitly.
package schedule

import (
	"fmt"

	"github.com/powerschedule/powerschedule/internal/timeutil"
	"github.com/powerschedule/powerschedule/pkg/models"
)

// User-facing preview strings. The provider and its users are Ukrainian.
const (
	PreviewNoShutdowns         = "Відключень немає"
	PreviewNoMoreShutdowns     = "Сьогодні відключень більше немає"
	PreviewUnknown             = "Поточний стан невідомий"
	PreviewNoShutdownsTomorrow = "Завтра відключень немає"
)

// PowerState is the evaluated condition of a queue at a point in time.
// It is recomputed on every call and never cached.
type PowerState struct {
	IsPowerOn bool
	Preview   string

	// Active is the shutdown containing "now", when power is off.
	Active *models.Shutdown

	// Upcoming are today's shutdowns that start after "now", in
	// provider order.
	Upcoming []models.Shutdown
}

// Evaluate derives the power state for one day's schedule. nowMinutes is
// minutes since midnight. For a non-today schedule the state is
// informational only: power reads as on and the preview describes
// tomorrow's first outage.
//
// Shutdowns with unparseable endpoints never match as active or
// upcoming, but they stay in the schedule for display purposes.
func Evaluate(data models.ScheduleData, isToday bool, nowMinutes int) PowerState {
	if !isToday {
		if len(data.Shutdowns) > 0 {
			return PowerState{
				IsPowerOn: true,
				Preview:   fmt.Sprintf("Завтра відключення о %s", data.Shutdowns[0].From),
			}
		}
		return PowerState{IsPowerOn: true, Preview: PreviewNoShutdownsTomorrow}
	}

	state := PowerState{IsPowerOn: true}

	for i, s := range data.Shutdowns {
		from, err := timeutil.ParseClock(s.From)
		if err != nil {
			continue
		}

		if from > nowMinutes {
			state.Upcoming = append(state.Upcoming, s)
			continue
		}

		if state.Active != nil {
			continue
		}
		to, err := timeutil.ParseClock(s.To)
		if err != nil {
			continue
		}
		if timeutil.Contains(nowMinutes, from, to) {
			state.Active = &data.Shutdowns[i]
			state.IsPowerOn = false
		}
	}

	switch {
	case !state.IsPowerOn:
		state.Preview = fmt.Sprintf("Увімкнуть о %s", state.Active.To)
	case len(state.Upcoming) > 0:
		state.Preview = fmt.Sprintf("Відключення о %s", state.Upcoming[0].From)
	case len(data.Shutdowns) > 0:
		state.Preview = PreviewNoMoreShutdowns
	default:
		state.Preview = PreviewNoShutdowns
	}

	return state
}
