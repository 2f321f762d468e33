package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerschedule/powerschedule/pkg/models"
)

var reconcileToday = time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)

func onDate(date string) models.ScheduleData {
	return models.ScheduleData{EventDate: date}
}

func TestReconcileTodayAndTomorrow(t *testing.T) {
	selection := Reconcile([]models.ScheduleData{
		onDate("11.11.2025"),
		onDate("10.11.2025"),
	}, reconcileToday)

	require.NotNil(t, selection.First)
	require.NotNil(t, selection.Second)
	assert.True(t, selection.HasTwoDays)
	assert.Equal(t, "10.11.2025", selection.First.EventDate)
	assert.Equal(t, "11.11.2025", selection.Second.EventDate)
	assert.Equal(t, LabelToday, selection.FirstLabel)
	assert.Equal(t, LabelTomorrow, selection.SecondLabel)
}

func TestReconcilePriorityIgnoresOrderAndNoise(t *testing.T) {
	inputs := [][]models.ScheduleData{
		{onDate("10.11.2025"), onDate("11.11.2025")},
		{onDate("11.11.2025"), onDate("10.11.2025")},
		{onDate("09.11.2025"), onDate("11.11.2025"), onDate("not-a-date"), onDate("10.11.2025")},
		{onDate("01.03.2020"), onDate("10.11.2025"), onDate("11.11.2025")},
	}

	for _, schedules := range inputs {
		selection := Reconcile(schedules, reconcileToday)
		assert.True(t, selection.HasTwoDays)
		assert.Equal(t, LabelToday, selection.FirstLabel)
		assert.Equal(t, LabelTomorrow, selection.SecondLabel)
	}
}

func TestReconcileSingleDays(t *testing.T) {
	tests := []struct {
		name      string
		schedules []models.ScheduleData
		wantDate  string
		wantLabel string
	}{
		{
			name:      "today_only",
			schedules: []models.ScheduleData{onDate("10.11.2025")},
			wantDate:  "10.11.2025",
			wantLabel: LabelToday,
		},
		{
			name:      "tomorrow_only",
			schedules: []models.ScheduleData{onDate("11.11.2025")},
			wantDate:  "11.11.2025",
			wantLabel: LabelTomorrow,
		},
		{
			name:      "yesterday_only",
			schedules: []models.ScheduleData{onDate("09.11.2025")},
			wantDate:  "09.11.2025",
			wantLabel: LabelYesterday,
		},
		{
			name:      "tomorrow_beats_yesterday",
			schedules: []models.ScheduleData{onDate("09.11.2025"), onDate("11.11.2025")},
			wantDate:  "11.11.2025",
			wantLabel: LabelTomorrow,
		},
		{
			name:      "unclassified_fallback",
			schedules: []models.ScheduleData{onDate("01.03.2020"), onDate("05.03.2020")},
			wantDate:  "01.03.2020",
			wantLabel: LabelSchedule,
		},
		{
			name:      "unparseable_fallback",
			schedules: []models.ScheduleData{onDate("soon")},
			wantDate:  "soon",
			wantLabel: LabelSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := Reconcile(tt.schedules, reconcileToday)
			require.NotNil(t, selection.First)
			assert.Nil(t, selection.Second)
			assert.False(t, selection.HasTwoDays)
			assert.Equal(t, tt.wantDate, selection.First.EventDate)
			assert.Equal(t, tt.wantLabel, selection.FirstLabel)
			assert.Empty(t, selection.SecondLabel)
		})
	}
}

func TestReconcileYesterdayAndToday(t *testing.T) {
	selection := Reconcile([]models.ScheduleData{
		onDate("10.11.2025"),
		onDate("09.11.2025"),
	}, reconcileToday)

	require.True(t, selection.HasTwoDays)
	assert.Equal(t, "09.11.2025", selection.First.EventDate)
	assert.Equal(t, "10.11.2025", selection.Second.EventDate)
	assert.Equal(t, LabelYesterday, selection.FirstLabel)
	assert.Equal(t, LabelToday, selection.SecondLabel)
}

func TestReconcileEmptyInput(t *testing.T) {
	selection := Reconcile(nil, reconcileToday)

	assert.Nil(t, selection.First)
	assert.Nil(t, selection.Second)
	assert.False(t, selection.HasTwoDays)
	assert.Empty(t, selection.FirstLabel)
	assert.Empty(t, selection.SecondLabel)
}

func TestReconcileLastWriteWinsPerBucket(t *testing.T) {
	first := onDate("10.11.2025")
	first.CreatedAt = "stale"
	second := onDate("10.11.2025")
	second.CreatedAt = "fresh"

	selection := Reconcile([]models.ScheduleData{first, second}, reconcileToday)

	require.NotNil(t, selection.First)
	assert.Equal(t, "fresh", selection.First.CreatedAt)
}

func TestReconcileIsDeterministic(t *testing.T) {
	schedules := []models.ScheduleData{
		onDate("09.11.2025"), onDate("10.11.2025"), onDate("garbage"),
	}

	first := Reconcile(schedules, reconcileToday)
	second := Reconcile(schedules, reconcileToday)

	assert.Equal(t, first, second)
}

func TestIsToday(t *testing.T) {
	assert.True(t, IsToday(onDate("10.11.2025"), reconcileToday))
	assert.False(t, IsToday(onDate("11.11.2025"), reconcileToday))
	assert.True(t, IsToday(onDate("bogus"), reconcileToday), "unparseable date evaluates as today")
}
