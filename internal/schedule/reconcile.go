package schedule

import (
	"time"

	"github.com/powerschedule/powerschedule/pkg/models"
)

// eventDateLayout is the provider's eventDate format (DD.MM.YYYY).
const eventDateLayout = "02.01.2006"

// Day labels shown above the schedule.
const (
	LabelToday     = "Сьогодні"
	LabelTomorrow  = "Завтра"
	LabelYesterday = "Вчора"
	LabelSchedule  = "Графік"
)

// DaySelection is the display set chosen from a multi-day provider
// response: at most two days with their labels. Second non-nil implies
// First non-nil.
type DaySelection struct {
	First       *models.ScheduleData
	Second      *models.ScheduleData
	FirstLabel  string
	SecondLabel string
	HasTwoDays  bool
}

// Reconcile classifies each fetched day by calendar relationship to
// today and selects which days to display. The provider may return any
// number of days in any order and is not guaranteed to include today.
//
// Priority: today+tomorrow, today, tomorrow, yesterday+today,
// yesterday, then the first fetched day as a bare fallback, then
// nothing. Days whose eventDate does not parse stay unclassified; when
// several days land in the same bucket the last one wins.
func Reconcile(schedules []models.ScheduleData, today time.Time) DaySelection {
	var yesterday, todayData, tomorrow *models.ScheduleData

	for i := range schedules {
		eventDate, err := time.Parse(eventDateLayout, schedules[i].EventDate)
		if err != nil {
			continue
		}
		switch {
		case sameDate(eventDate, today):
			todayData = &schedules[i]
		case sameDate(eventDate, today.AddDate(0, 0, 1)):
			tomorrow = &schedules[i]
		case sameDate(eventDate, today.AddDate(0, 0, -1)):
			yesterday = &schedules[i]
		}
	}

	switch {
	case todayData != nil && tomorrow != nil:
		return DaySelection{
			First: todayData, Second: tomorrow,
			FirstLabel: LabelToday, SecondLabel: LabelTomorrow,
			HasTwoDays: true,
		}
	case todayData != nil && yesterday == nil:
		return DaySelection{First: todayData, FirstLabel: LabelToday}
	case tomorrow != nil:
		return DaySelection{First: tomorrow, FirstLabel: LabelTomorrow}
	case yesterday != nil && todayData != nil:
		return DaySelection{
			First: yesterday, Second: todayData,
			FirstLabel: LabelYesterday, SecondLabel: LabelToday,
			HasTwoDays: true,
		}
	case yesterday != nil:
		return DaySelection{First: yesterday, FirstLabel: LabelYesterday}
	case len(schedules) > 0:
		return DaySelection{First: &schedules[0], FirstLabel: LabelSchedule}
	default:
		return DaySelection{}
	}
}

// IsToday reports whether the schedule's eventDate is the given day.
// An unparseable date counts as today so a sole fetched day still
// evaluates against the current time.
func IsToday(data models.ScheduleData, today time.Time) bool {
	eventDate, err := time.Parse(eventDateLayout, data.EventDate)
	if err != nil {
		return true
	}
	return sameDate(eventDate, today)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
