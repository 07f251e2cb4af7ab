package service

import "github.com/noah-isme/timetable-wizard-api/internal/models"

var schoolDays = []models.Day{
	models.DayMonday,
	models.DayTuesday,
	models.DayWednesday,
	models.DayThursday,
	models.DayFriday,
}

var bellSchedules = map[models.Level][]models.TimePeriod{
	models.LevelPreschool: {
		{Period: "1", StartTime: "09:00", EndTime: "09:30"},
		{Period: "2", StartTime: "09:40", EndTime: "10:10"},
		{Period: "3", StartTime: "10:20", EndTime: "10:50"},
		{Period: "Teneffüs", StartTime: "10:50", EndTime: "11:20", IsBreak: true},
		{Period: "4", StartTime: "11:20", EndTime: "11:50"},
		{Period: "5", StartTime: "12:00", EndTime: "12:30"},
	},
	models.LevelPrimary: {
		{Period: "1", StartTime: "08:30", EndTime: "09:10"},
		{Period: "2", StartTime: "09:20", EndTime: "10:00"},
		{Period: "3", StartTime: "10:10", EndTime: "10:50"},
		{Period: "4", StartTime: "11:00", EndTime: "11:40"},
		{Period: "Öğle Arası", StartTime: "11:40", EndTime: "12:30", IsBreak: true},
		{Period: "5", StartTime: "12:30", EndTime: "13:10"},
		{Period: "6", StartTime: "13:20", EndTime: "14:00"},
		{Period: "7", StartTime: "14:10", EndTime: "14:50"},
	},
	models.LevelMiddle: {
		{Period: "1", StartTime: "08:30", EndTime: "09:10"},
		{Period: "2", StartTime: "09:20", EndTime: "10:00"},
		{Period: "3", StartTime: "10:10", EndTime: "10:50"},
		{Period: "4", StartTime: "11:00", EndTime: "11:40"},
		{Period: "5", StartTime: "11:50", EndTime: "12:30"},
		{Period: "Öğle Arası", StartTime: "12:30", EndTime: "13:20", IsBreak: true},
		{Period: "6", StartTime: "13:20", EndTime: "14:00"},
		{Period: "7", StartTime: "14:10", EndTime: "14:50"},
		{Period: "8", StartTime: "15:00", EndTime: "15:40"},
		{Period: "9", StartTime: "15:50", EndTime: "16:30"},
	},
}

// PeriodsFor returns the ordered bell schedule of a level, breaks included.
// Unknown levels have no periods.
func PeriodsFor(level models.Level) []models.TimePeriod {
	periods := bellSchedules[level]
	out := make([]models.TimePeriod, len(periods))
	copy(out, periods)
	return out
}

// LessonPeriods returns the assignable periods of a level in grid order.
func LessonPeriods(level models.Level) []models.TimePeriod {
	periods := bellSchedules[level]
	out := make([]models.TimePeriod, 0, len(periods))
	for _, p := range periods {
		if !p.IsBreak {
			out = append(out, p)
		}
	}
	return out
}

// DaysOf returns the five school days in week order.
func DaysOf() []models.Day {
	out := make([]models.Day, len(schoolDays))
	copy(out, schoolDays)
	return out
}

// IsSchoolDay reports whether day is one of the five school days.
func IsSchoolDay(day models.Day) bool {
	for _, d := range schoolDays {
		if d == day {
			return true
		}
	}
	return false
}

// FindPeriod looks up a period of the level on a school day.
func FindPeriod(level models.Level, day models.Day, period string) (models.TimePeriod, bool) {
	if !IsSchoolDay(day) {
		return models.TimePeriod{}, false
	}
	for _, p := range bellSchedules[level] {
		if p.Period == period {
			return p, true
		}
	}
	return models.TimePeriod{}, false
}

// GridFor assembles the weekly grid of a level.
func GridFor(level models.Level) models.TimeGrid {
	return models.TimeGrid{Level: level, Days: DaysOf(), Periods: PeriodsFor(level)}
}

func assignable(level models.Level, day models.Day, period string) bool {
	p, ok := FindPeriod(level, day, period)
	return ok && !p.IsBreak
}
