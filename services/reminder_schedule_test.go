package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScheduledTime(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		now    time.Time
		want   time.Time
	}{
		{
			name:   "tomorrow morning from an IST afternoon",
			preset: PresetTomorrowMorning,
			now:    time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC), // 15:30 IST, 10 Mar
			want:   time.Date(2024, 3, 11, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "tomorrow afternoon",
			preset: PresetTomorrowAfternoon,
			now:    time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
			want:   time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "UTC evening is already the next IST day",
			preset: PresetTomorrowMorning,
			now:    time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), // 01:30 IST, 11 Mar
			want:   time.Date(2024, 3, 12, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "in 2 days",
			preset: PresetIn2Days,
			now:    time.Date(2024, 2, 28, 6, 0, 0, 0, time.UTC),
			want:   time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "in 3 days",
			preset: PresetIn3Days,
			now:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want:   time.Date(2024, 3, 13, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "in 1 week across a year end",
			preset: PresetIn1Week,
			now:    time.Date(2024, 12, 28, 12, 0, 0, 0, time.UTC),
			want:   time.Date(2025, 1, 4, 4, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateScheduledTime(tt.preset, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestCalculateScheduledTime_LocalClockAndDayOffset(t *testing.T) {
	want := map[string]struct{ days, hour, minute int }{
		PresetTomorrowMorning:   {1, 9, 30},
		PresetTomorrowAfternoon: {1, 15, 30},
		PresetIn2Days:           {2, 9, 30},
		PresetIn3Days:           {3, 9, 30},
		PresetIn1Week:           {7, 9, 30},
	}

	base := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	for step := 0; step < 96; step++ {
		now := base.Add(time.Duration(step) * 15 * time.Minute)
		nowLocal := now.In(BusinessLocation)
		nowDate := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

		for preset, rule := range want {
			got, err := CalculateScheduledTime(preset, now)
			require.NoError(t, err)

			local := got.In(BusinessLocation)
			assert.Equal(t, rule.hour, local.Hour(), "%s at %s", preset, now)
			assert.Equal(t, rule.minute, local.Minute(), "%s at %s", preset, now)

			gotDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
			assert.Equal(t, rule.days, int(gotDate.Sub(nowDate).Hours()/24), "%s at %s", preset, now)
		}
	}
}

func TestCalculateScheduledTime_InvalidPreset(t *testing.T) {
	for _, preset := range []string{"", "tomorrow", "TOMORROW_MORNING", "in_2_weeks"} {
		_, err := CalculateScheduledTime(preset, time.Now())
		assert.ErrorIs(t, err, ErrValidation, preset)
		assert.ErrorIs(t, err, ErrInvalidPreset, preset)
	}
}

func TestFormatScheduledTime(t *testing.T) {
	at := time.Date(2024, 3, 12, 4, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tue, 12 Mar 2024 at 9:30 AM IST", FormatScheduledTime(at))

	at = time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Tue, 12 Mar 2024 at 3:30 PM IST", FormatScheduledTime(at))
}

func TestPresets(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 5)
	assert.Equal(t, PresetTomorrowMorning, presets[0].Value)
	for _, p := range presets {
		_, err := CalculateScheduledTime(p.Value, time.Now())
		assert.NoError(t, err)
		assert.NotEmpty(t, p.Label)
	}
}
