package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/bookings"
)

const (
	msgUnauthorized  = "пользователь не авторизован"
	msgInvalidUnix   = "некорректное время слота"
	msgNotFound      = "бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgCannotCancel  = "до начала слота слишком мало времени, отмена невозможна"
	msgConfigMissing = "расписание ещё не настроено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{unix}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	unix, err := handlers.PathInt64(r, "unix")
	if err != nil || unix <= 0 {
		h.logger.Warn("DELETE /bookings/{unix} - Invalid unix: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnix)
		return
	}

	result, err := h.service.Cancel(r.Context(), viewer, unix)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{unix} - Booking not found: unix=%d", unix)
			handlers.RespondBadRequest(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{unix} - Access denied: unix=%d, user_id=%d", unix, viewer.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("DELETE /bookings/{unix} - Cannot cancel: unix=%d", unix)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrConfigMissing):
			handlers.RespondServiceUnavailable(w, msgConfigMissing)

		default:
			h.logger.Error("DELETE /bookings/{unix} - Failed to cancel booking: unix=%d, error=%v", unix, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{unix} - Booking cancelled successfully: unix=%d, user_id=%d", unix, viewer.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
