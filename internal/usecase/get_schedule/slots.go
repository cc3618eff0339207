package get_schedule

import (
	"math"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// horizonDays количество дней после сегодняшнего, которые входят в горизонт.
// Неполный последний день засчитывается целиком.
func horizonDays(today, lastBookable time.Time) int {
	return int(math.Ceil(lastBookable.Sub(today).Hours() / 24))
}

// resolveSlotState вычисляет статус слота для пользователя
func resolveSlotState(
	slot domain.SlotTime,
	booking *domain.Booking,
	viewer domain.Viewer,
	now time.Time,
	cfg *domain.ScheduleConfig,
) domain.SlotState {
	state := domain.SlotState{
		Unix: slot.Unix(),
		Time: slot.Time,
	}
	untilStart := slot.Start.Sub(now)

	// Слот свободен
	if booking == nil {
		if untilStart < cfg.ExpireWindow() {
			state.Status = domain.SlotUnavailable
		} else {
			state.Status = domain.SlotAvailable
		}
		return state
	}

	// Слот закрыт администратором
	if booking.IsClosed() {
		state.Status = domain.SlotClosed
		return state
	}

	// Чужое бронирование обычный пользователь видит как недоступный слот без владельца
	if !viewer.IsAdmin && !booking.BelongsTo(viewer.UserID) {
		state.Status = domain.SlotUnavailable
		return state
	}

	if untilStart < cfg.CancelWindow() {
		state.Status = domain.SlotBookedUncancellable
	} else {
		state.Status = domain.SlotBooked
	}
	state.Occupant = occupantOf(booking)

	return state
}

func occupantOf(b *domain.Booking) *domain.Occupant {
	if b.Occupant != nil {
		return b.Occupant
	}
	return &domain.Occupant{ID: *b.UserID}
}
