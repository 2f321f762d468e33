// Package notify delivers user-facing notifications about upcoming
// shutdowns and changed schedules. Computing what to send and when is
// the schedule engine's job; this package only carries messages out.
package notify

import (
	"github.com/powerschedule/powerschedule/pkg/models"
)

// Notifier delivers the two notification kinds the app produces.
type Notifier interface {
	// ShutdownAlert warns that a queue's power goes off at startClock.
	// leadText is the human lead phrase ("через 30 хв").
	ShutdownAlert(queue models.PowerQueue, startClock, leadText string) error

	// ScheduleChanged tells the user a queue's schedule differs from
	// the previously fetched one.
	ScheduleChanged(queue models.PowerQueue) error
}

// Multi fans a notification out to several delivery channels. A failing
// channel does not stop the others; the first error is returned.
type Multi []Notifier

func (m Multi) ShutdownAlert(queue models.PowerQueue, startClock, leadText string) error {
	var first error
	for _, n := range m {
		if err := n.ShutdownAlert(queue, startClock, leadText); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) ScheduleChanged(queue models.PowerQueue) error {
	var first error
	for _, n := range m {
		if err := n.ScheduleChanged(queue); err != nil && first == nil {
			first = err
		}
	}
	return first
}
