package create_batch_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// maxSeriesRange серия не длиннее года
const maxSeriesRange = 366 * 24 * time.Hour

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Viewer.UserID <= 0 {
		return fmt.Errorf("%w: viewer must be authenticated", ErrInvalidInput)
	}

	if req.Weekday < int(time.Sunday) || req.Weekday > int(time.Saturday) {
		return fmt.Errorf("%w: weekday must be in [0, 6]", ErrInvalidInput)
	}

	if req.Unix <= 0 {
		return fmt.Errorf("%w: unix must be positive", ErrInvalidInput)
	}

	if req.From <= 0 || req.To <= req.From {
		return fmt.Errorf("%w: range must satisfy 0 < from < to", ErrInvalidInput)
	}

	if time.Duration(req.To-req.From)*time.Second > maxSeriesRange {
		return fmt.Errorf("%w: range is longer than a year", ErrInvalidInput)
	}

	if req.UserID < 0 {
		return fmt.Errorf("%w: userId must not be negative", ErrInvalidInput)
	}

	if !req.Viewer.IsAdmin && req.UserID != 0 && req.UserID != req.Viewer.UserID {
		return ErrAccessDenied
	}

	return nil
}

// ownerOf владелец серии
func ownerOf(req *Request) int64 {
	if req.UserID != 0 {
		return req.UserID
	}
	return req.Viewer.UserID
}

// validateDrafts проверяет каждый слот серии, первая ошибка прерывает проверку
func validateDrafts(v *validator.Validate, drafts []domain.BookingDraft) error {
	for _, d := range drafts {
		if err := v.Struct(d); err != nil {
			return fmt.Errorf("%w: unix=%d: %v", ErrValidationFailed, d.Unix, err)
		}
	}
	return nil
}

// validateSlotTime проверяет, что слот ещё можно забронировать
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
