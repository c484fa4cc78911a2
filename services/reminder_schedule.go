package services

import (
	"time"

	"github.com/estatehub-api/dto"
)

// BusinessLocation is the fixed business timezone, UTC+5:30 with no DST
var BusinessLocation = time.FixedZone("IST", 5*3600+30*60)

// Reminder presets
const (
	PresetTomorrowMorning   = "tomorrow_morning"
	PresetTomorrowAfternoon = "tomorrow_afternoon"
	PresetIn2Days           = "in_2_days"
	PresetIn3Days           = "in_3_days"
	PresetIn1Week           = "in_1_week"
)

type presetRule struct {
	name   string
	label  string
	days   int
	hour   int
	minute int
}

// presetRules is ordered as presented to the backoffice
var presetRules = []presetRule{
	{PresetTomorrowMorning, "Tomorrow morning (9:30 AM)", 1, 9, 30},
	{PresetTomorrowAfternoon, "Tomorrow afternoon (3:30 PM)", 1, 15, 30},
	{PresetIn2Days, "In 2 days (9:30 AM)", 2, 9, 30},
	{PresetIn3Days, "In 3 days (9:30 AM)", 3, 9, 30},
	{PresetIn1Week, "In 1 week (9:30 AM)", 7, 9, 30},
}

func findPreset(preset string) (presetRule, bool) {
	for _, rule := range presetRules {
		if rule.name == preset {
			return rule, true
		}
	}
	return presetRule{}, false
}

// CalculateScheduledTime maps preset onto an instant: the business-local
// date of now, plus the preset's day offset, at the preset's local clock
// time. The result is in UTC.
func CalculateScheduledTime(preset string, now time.Time) (time.Time, error) {
	rule, ok := findPreset(preset)
	if !ok {
		return time.Time{}, ErrInvalidPreset
	}

	local := now.In(BusinessLocation)
	// time.Date normalizes day overflow across month and year ends
	scheduled := time.Date(local.Year(), local.Month(), local.Day()+rule.days,
		rule.hour, rule.minute, 0, 0, BusinessLocation)
	return scheduled.UTC(), nil
}

// FormatScheduledTime renders t in business-local time for display
func FormatScheduledTime(t time.Time) string {
	return t.In(BusinessLocation).Format("Mon, 02 Jan 2006 at 3:04 PM") + " IST"
}

// Presets lists the selectable presets with display labels
func Presets() []dto.PresetOption {
	options := make([]dto.PresetOption, len(presetRules))
	for i, rule := range presetRules {
		options[i] = dto.PresetOption{Value: rule.name, Label: rule.label}
	}
	return options
}
