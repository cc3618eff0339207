package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateDaySlots_AllWeekdays(t *testing.T) {
	// 2024-01-07, воскресенье, дальше вся неделя
	sunday := time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC)

	for i := 0; i < DaysInWeek; i++ {
		date := sunday.AddDate(0, 0, i)
		day := DayTemplate{StartHours: 9, StartMinutes: 15, SlotNumber: 6}

		slots := EnumerateDaySlots(day, date, 60)

		require.Len(t, slots, 6, "weekday %s", date.Weekday())
		assert.Equal(t, time.Date(2024, 1, 7+i, 9, 15, 0, 0, time.UTC), slots[0].Start)
		assert.Equal(t, "09:15", slots[0].Time)
		for j := 1; j < len(slots); j++ {
			assert.Equal(t, 60*time.Minute, slots[j].Start.Sub(slots[j-1].Start))
		}
	}
}

func TestEnumerateDaySlots_StepIncludesInterval(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	day := DayTemplate{StartHours: 10, SlotNumber: 3}

	slots := EnumerateDaySlots(day, date, 50+10)

	require.Len(t, slots, 3)
	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, []string{slots[0].Time, slots[1].Time, slots[2].Time})
}

func TestEnumerateDaySlots_Empty(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, EnumerateDaySlots(DayTemplate{StartHours: 10, SlotNumber: 5, Off: true}, date, 60))
	assert.Empty(t, EnumerateDaySlots(DayTemplate{StartHours: 10, SlotNumber: 0}, date, 60))
}

func TestEnumerateDaySlots_NotClippedAtMidnight(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	day := DayTemplate{StartHours: 23, SlotNumber: 3}

	slots := EnumerateDaySlots(day, date, 30)

	require.Len(t, slots, 3)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), slots[2].Start)
}

func TestMaxSlotsPerDay(t *testing.T) {
	// 10:00 → 23:55 = 835 минут, шаг 60 → 13 слотов
	assert.Equal(t, 13, MaxSlotsPerDay(DayTemplate{StartHours: 10}, 60))
	assert.Equal(t, 0, MaxSlotsPerDay(DayTemplate{StartHours: 24}, 60))
	assert.Equal(t, 0, MaxSlotsPerDay(DayTemplate{StartHours: 10}, 0))
}

func TestDefaultScheduleConfig(t *testing.T) {
	now := time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC)

	cfg := DefaultScheduleConfig(now)

	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC).Unix(), cfg.LastBookableDay)
	assert.Equal(t, 60, cfg.StepMinutes())
	assert.Equal(t, 2, cfg.DailyLimit)
	for _, day := range cfg.Week {
		assert.Equal(t, DayTemplate{StartHours: 10, SlotNumber: 5}, day)
		assert.LessOrEqual(t, day.SlotNumber, MaxSlotsPerDay(day, cfg.StepMinutes()))
	}
}
