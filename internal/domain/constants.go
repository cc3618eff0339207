package domain

// Default schedule values used when settings are bootstrapped
const (
	DefaultBookableDays      = 10
	DefaultSlotDuration      = 50
	DefaultInterval          = 10
	DefaultExpireOffset      = 60 // minutes
	DefaultCancelationNotice = 24 // hours
	DefaultDailyLimit        = 2
	DefaultStartHours        = 10
	DefaultStartMinutes      = 0
	DefaultSlotNumber        = 5
)

// Business validation constants
const (
	DaysInWeek      = 7
	MinSlotDuration = 5
	MaxSlotDuration = 240
	MaxInterval     = 240
	MaxSlotNumber   = 288
	MaxStartHours   = 24
	MaxStartMinutes = 59

	// Последний слот дня должен начинаться не позже 23:55
	LastSlotHour   = 23
	LastSlotMinute = 55
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
