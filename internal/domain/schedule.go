package domain

import (
	"time"
)

// DayTemplate recurring configuration of one weekday
type DayTemplate struct {
	StartHours   int  `json:"startHours" validate:"min=0,max=24"`
	StartMinutes int  `json:"startMinutes" validate:"min=0,max=59"`
	SlotNumber   int  `json:"slotNumber" validate:"min=0,max=288"`
	Off          bool `json:"off"`
}

// IsWorking returns true if the day produces at least one slot
func (d DayTemplate) IsWorking() bool {
	return !d.Off && d.SlotNumber > 0
}

// ScheduleConfig snapshot of the weekly template and global booking policy.
// Week is indexed by time.Weekday (0 = Sunday).
type ScheduleConfig struct {
	LastBookableDay   int64 // epoch seconds
	SlotDuration      int   // minutes
	Interval          int   // minutes between slots
	ExpireOffset      int   // minutes
	CancelationNotice int   // hours
	DailyLimit        int   // 0 = unlimited
	Week              [DaysInWeek]DayTemplate
	UpdatedAt         time.Time
}

// StepMinutes distance between the starts of two consecutive slots
func (c *ScheduleConfig) StepMinutes() int {
	return c.SlotDuration + c.Interval
}

// Day returns the template for the given weekday
func (c *ScheduleConfig) Day(weekday time.Weekday) DayTemplate {
	return c.Week[int(weekday)]
}

// HasDailyLimit returns true if the number of bookings per day is restricted
func (c *ScheduleConfig) HasDailyLimit() bool {
	return c.DailyLimit > 0
}

// ExpireWindow lead time before a slot start during which it can no longer be booked
func (c *ScheduleConfig) ExpireWindow() time.Duration {
	return time.Duration(c.ExpireOffset) * time.Minute
}

// CancelWindow lead time before a slot start during which a booking can no longer be cancelled
func (c *ScheduleConfig) CancelWindow() time.Duration {
	return time.Duration(c.CancelationNotice) * time.Hour
}

// LastBookable returns LastBookableDay as time in loc
func (c *ScheduleConfig) LastBookable(loc *time.Location) time.Time {
	return time.Unix(c.LastBookableDay, 0).In(loc)
}

// DefaultScheduleConfig settings seeded on first start
func DefaultScheduleConfig(now time.Time) ScheduleConfig {
	cfg := ScheduleConfig{
		LastBookableDay:   StartOfDay(now).AddDate(0, 0, DefaultBookableDays).Unix(),
		SlotDuration:      DefaultSlotDuration,
		Interval:          DefaultInterval,
		ExpireOffset:      DefaultExpireOffset,
		CancelationNotice: DefaultCancelationNotice,
		DailyLimit:        DefaultDailyLimit,
	}
	for i := range cfg.Week {
		cfg.Week[i] = DayTemplate{
			StartHours:   DefaultStartHours,
			StartMinutes: DefaultStartMinutes,
			SlotNumber:   DefaultSlotNumber,
		}
	}
	return cfg
}

// MaxSlotsPerDay how many slots of stepMinutes fit between the day start and 23:55
func MaxSlotsPerDay(day DayTemplate, stepMinutes int) int {
	if stepMinutes <= 0 {
		return 0
	}
	start := day.StartHours*60 + day.StartMinutes
	last := LastSlotHour*60 + LastSlotMinute
	if start > last {
		return 0
	}
	return (last - start) / stepMinutes
}

// StartOfDay midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
