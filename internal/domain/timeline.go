package domain

import "time"

// SlotTime start of a single slot
type SlotTime struct {
	Start time.Time
	Time  string // HH:MM
}

// Unix slot identity
func (s SlotTime) Unix() int64 {
	return s.Start.Unix()
}

// EnumerateDaySlots returns slot starts of the given calendar date.
// The first slot begins at day.StartHours:day.StartMinutes, each next one stepMinutes later.
// Slots are not clipped at midnight.
func EnumerateDaySlots(day DayTemplate, date time.Time, stepMinutes int) []SlotTime {
	if !day.IsWorking() {
		return []SlotTime{}
	}

	y, m, d := date.Date()
	anchor := time.Date(y, m, d, day.StartHours, day.StartMinutes, 0, 0, date.Location())
	step := time.Duration(stepMinutes) * time.Minute

	slots := make([]SlotTime, 0, day.SlotNumber)
	for i := 0; i < day.SlotNumber; i++ {
		start := anchor.Add(time.Duration(i) * step)
		slots = append(slots, SlotTime{
			Start: start,
			Time:  start.Format(TimeFormat),
		})
	}

	return slots
}
