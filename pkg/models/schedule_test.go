package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownDurationMinutes(t *testing.T) {
	tests := []struct {
		name string
		s    Shutdown
		want int
	}{
		{name: "two_hours", s: Shutdown{From: "14:00", To: "16:00"}, want: 120},
		{name: "with_minutes", s: Shutdown{From: "08:30", To: "11:45"}, want: 195},
		{name: "zero_length", s: Shutdown{From: "10:00", To: "10:00"}, want: 0},
		{name: "negative_preserved", s: Shutdown{From: "22:00", To: "02:00"}, want: -1200},
		{name: "malformed_from", s: Shutdown{From: "abc", To: "16:00"}, want: 0},
		{name: "malformed_to", s: Shutdown{From: "14:00", To: ""}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.DurationMinutes())
		})
	}
}

func TestScheduleDataTotals(t *testing.T) {
	d := ScheduleData{
		Shutdowns: []Shutdown{
			{From: "04:00", To: "07:00"},  // 180
			{From: "18:00", To: "20:30"},  // 150
			{From: "22:00", To: "02:00"},  // negative, counts as 0
			{From: "bad", To: "16:00"},    // malformed, counts as 0
		},
	}

	assert.Equal(t, 330, d.TotalOutageMinutes())
	assert.Equal(t, 5, d.TotalHours())
	assert.Equal(t, 30, d.RemainingMinutes())
}

func TestHourlyTimeline(t *testing.T) {
	d := ScheduleData{
		Shutdowns: []Shutdown{
			{From: "04:00", To: "07:00"},
			{From: "20:30", To: "23:00"},
			{From: "abc", To: "16:00"}, // malformed, skipped
		},
	}

	timeline := d.HourlyTimeline()
	require.Len(t, timeline, TimelineHours)

	for hour, on := range timeline {
		switch {
		case hour >= 4 && hour < 7:
			assert.False(t, on, "hour %d should be off", hour)
		case hour >= 20 && hour < 23:
			assert.False(t, on, "hour %d should be off", hour)
		default:
			assert.True(t, on, "hour %d should be on", hour)
		}
	}
}

func TestHourlyTimelineClampsEnd(t *testing.T) {
	d := ScheduleData{Shutdowns: []Shutdown{{From: "23:00", To: "24:00"}}}

	timeline := d.HourlyTimeline()
	require.Len(t, timeline, TimelineHours)
	assert.False(t, timeline[23])
	assert.True(t, timeline[22])
}

func TestHourlyTimelineEmpty(t *testing.T) {
	timeline := ScheduleData{}.HourlyTimeline()
	require.Len(t, timeline, TimelineHours)
	for hour, on := range timeline {
		assert.True(t, on, "hour %d", hour)
	}
}

func TestNewPowerQueue(t *testing.T) {
	q := NewPowerQueue("Дім", "4.2")

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Дім", q.Name)
	assert.Equal(t, "4.2", q.QueueNumber)
	assert.False(t, q.NotificationsEnabled)
	assert.True(t, q.AutoUpdateEnabled)

	other := NewPowerQueue("Дім", "4.2")
	assert.NotEqual(t, q.ID, other.ID)
}
