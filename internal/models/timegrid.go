package models

import "strings"

// Level identifies a school tier with its own bell schedule.
type Level string

const (
	LevelPreschool Level = "Anaokulu"
	LevelPrimary   Level = "İlkokul"
	LevelMiddle    Level = "Ortaokul"
)

// Day is a school weekday label.
type Day string

const (
	DayMonday    Day = "Pazartesi"
	DayTuesday   Day = "Salı"
	DayWednesday Day = "Çarşamba"
	DayThursday  Day = "Perşembe"
	DayFriday    Day = "Cuma"
)

// TimePeriod is one entry of a level's daily bell schedule. Break periods are
// part of the sequence but can never hold a lesson or a constraint.
type TimePeriod struct {
	Period    string `json:"period"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBreak   bool   `json:"is_break"`
}

// TimeGrid is the rendered weekly grid for a level.
type TimeGrid struct {
	Level   Level        `json:"level"`
	Days    []Day        `json:"days"`
	Periods []TimePeriod `json:"periods"`
}

var levelFolder = strings.NewReplacer("İ", "i", "I", "i", "ı", "i")

// ParseLevel maps loosely spelled level names ("ORTAOKUL", "ilkokul") onto
// the canonical Level values.
func ParseLevel(raw string) (Level, bool) {
	folded := strings.ToLower(levelFolder.Replace(strings.TrimSpace(raw)))
	if folded == "" {
		return "", false
	}
	for _, level := range []Level{LevelPreschool, LevelPrimary, LevelMiddle} {
		if folded == strings.ToLower(levelFolder.Replace(string(level))) {
			return level, true
		}
	}
	return "", false
}
