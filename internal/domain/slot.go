package domain

import "time"

// SlotStatus state of a slot as seen by a viewer
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	// SlotAvailableUncancellable is never produced by the engine, kept for API compatibility
	SlotAvailableUncancellable SlotStatus = "availableUncancellable"
	SlotUnavailable            SlotStatus = "unavailable"
	SlotBooked                 SlotStatus = "booked"
	SlotBookedUncancellable    SlotStatus = "bookedUncancellable"
	SlotClosed                 SlotStatus = "closed"
)

// SlotState derived state of a single slot, never persisted
type SlotState struct {
	Unix     int64
	Time     string
	Status   SlotStatus
	Occupant *Occupant
}

// DaySchedule slots of one calendar day
type DaySchedule struct {
	Date  time.Time
	Slots []SlotState
}
