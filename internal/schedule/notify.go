package schedule

import (
	"fmt"
	"time"

	"github.com/powerschedule/powerschedule/internal/timeutil"
	"github.com/powerschedule/powerschedule/pkg/models"
)

// FireTime pairs a notification instant with the shutdown it warns
// about. At is the shutdown start minus the configured lead.
type FireTime struct {
	At       time.Time
	Shutdown models.Shutdown
}

// FireTimes computes notification instants for the given shutdowns on
// referenceDate. Only strictly-future instants relative to now are
// returned; shutdowns with an unparseable start are skipped. Output
// follows input order and is not sorted by instant — callers needing
// chronological dispatch sort on At themselves.
//
// leadMinutes must be non-negative; Config.Validate enforces that
// before any caller gets here.
func FireTimes(shutdowns []models.Shutdown, leadMinutes int, now, referenceDate time.Time) []FireTime {
	var out []FireTime
	for _, s := range shutdowns {
		from, err := timeutil.ParseClock(s.From)
		if err != nil {
			continue
		}

		start := time.Date(
			referenceDate.Year(), referenceDate.Month(), referenceDate.Day(),
			from/60, from%60, 0, 0, referenceDate.Location(),
		)
		at := start.Add(-time.Duration(leadMinutes) * time.Minute)
		if !at.After(now) {
			continue
		}

		out = append(out, FireTime{At: at, Shutdown: s})
	}
	return out
}

// LeadText renders a lead time as a human phrase for notification
// bodies: "через 2 год", "через 1 год 30 хв", "через 30 хв", "зараз".
func LeadText(minutes int) string {
	switch {
	case minutes >= 60:
		hours := minutes / 60
		mins := minutes % 60
		if mins == 0 {
			return fmt.Sprintf("через %d год", hours)
		}
		return fmt.Sprintf("через %d год %d хв", hours, mins)
	case minutes > 0:
		return fmt.Sprintf("через %d хв", minutes)
	default:
		return "зараз"
	}
}
