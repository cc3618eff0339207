package domain

// Booking reservation of a single slot.
// The slot instant (Unix) is the identity; UserID == nil means the slot was closed by an administrator.
type Booking struct {
	Unix     int64
	BookedAt int64
	UserID   *int64
	Closed   bool

	// Occupant профиль владельца, заполняется при выборке с join пользователей
	Occupant *Occupant
}

// IsClosed returns true if the slot was administratively closed
func (b *Booking) IsClosed() bool {
	return b.UserID == nil
}

// BelongsTo returns true if the booking is owned by userID
func (b *Booking) BelongsTo(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

// BookingDraft booking not yet persisted
type BookingDraft struct {
	Unix   int64 `validate:"gt=0"`
	UserID int64 `validate:"gt=0"`
}
