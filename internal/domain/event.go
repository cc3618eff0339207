package domain

import "time"

// BookingEventType kind of a booking change
type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingCancelled BookingEventType = "booking.cancelled"
	EventSlotClosed       BookingEventType = "slot.closed"
)

// BookingEvent notification about a committed booking change
type BookingEvent struct {
	Type    BookingEventType `json:"type"`
	Unix    int64            `json:"unix"`
	UserID  *int64           `json:"userId"`
	ActorID int64            `json:"actorId"`
	At      time.Time        `json:"at"`
}
