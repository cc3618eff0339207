package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Viewer.UserID <= 0 {
		return fmt.Errorf("%w: viewer must be authenticated", ErrInvalidInput)
	}

	if req.Unix <= 0 {
		return fmt.Errorf("%w: unix must be positive", ErrInvalidInput)
	}

	if req.UserID < 0 {
		return fmt.Errorf("%w: userId must not be negative", ErrInvalidInput)
	}

	if !req.Viewer.IsAdmin && req.UserID != 0 && req.UserID != req.Viewer.UserID {
		return ErrAccessDenied
	}

	return nil
}

// ownerOf владелец будущего бронирования
func ownerOf(req *Request) int64 {
	if req.UserID != 0 {
		return req.UserID
	}
	return req.Viewer.UserID
}

// validateSlotTime проверяет, что слот ещё можно забронировать:
// он не позже lastBookableDay и до его начала не меньше expireOffset минут
func validateSlotTime(slot, now time.Time, cfg *domain.ScheduleConfig) error {
	lastDay := domain.StartOfDay(cfg.LastBookable(slot.Location()))
	if !domain.StartOfDay(slot).Before(lastDay.AddDate(0, 0, 1)) {
		return ErrOutsideHorizon
	}

	if slot.Sub(now) < cfg.ExpireWindow() {
		return ErrTooLateToBook
	}

	return nil
}
