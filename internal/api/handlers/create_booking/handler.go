package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SlotScheduler/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "пользователь не авторизован"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgOutsideHorizon     = "слот находится за пределами доступного периода"
	msgDailyLimit         = "превышен дневной лимит бронирований"
	msgPointsExhausted    = "недостаточно очков для бронирования"
	msgForbidden          = "доступ запрещен"
	msgUserNotFound       = "пользователь не найден"
	msgConfigMissing      = "расписание ещё не настроено"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(viewer))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", viewer.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, unix=%d", viewer.UserID, req.Unix)
			handlers.RespondGone(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, unix=%d", viewer.UserID, req.Unix)
			handlers.RespondGone(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrOutsideHorizon):
			h.logger.Warn("POST /bookings - Outside horizon: user_id=%d, unix=%d", viewer.UserID, req.Unix)
			handlers.RespondGone(w, msgOutsideHorizon)

		case errors.Is(err, createBooking.ErrDailyLimitExceeded):
			h.logger.Warn("POST /bookings - Daily limit exceeded: user_id=%d, unix=%d", viewer.UserID, req.Unix)
			handlers.RespondForbidden(w, msgDailyLimit)

		case errors.Is(err, createBooking.ErrPointsExhausted):
			h.logger.Warn("POST /bookings - Points exhausted: user_id=%d", viewer.UserID)
			handlers.RespondForbidden(w, msgPointsExhausted)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d", viewer.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", viewer.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrConfigMissing):
			h.logger.Warn("POST /bookings - Settings are missing")
			handlers.RespondServiceUnavailable(w, msgConfigMissing)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, unix=%d, error=%v",
				viewer.UserID, req.Unix, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: unix=%d, user_id=%d", result.Unix, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
