package create_batch_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	createBatchBooking "github.com/m04kA/SMC-SlotScheduler/internal/usecase/create_batch_booking"
)

const (
	msgUnauthorized       = "пользователь не авторизован"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры серии бронирований"
	msgNoSlots            = "в выбранном периоде нет подходящих слотов"
	msgPartial            = "часть слотов серии уже занята, ничего не забронировано"
	msgTooLateToBook      = "слишком поздно для бронирования одного из слотов"
	msgOutsideHorizon     = "часть слотов находится за пределами доступного периода"
	msgDailyLimit         = "превышен дневной лимит бронирований"
	msgPointsExhausted    = "недостаточно очков для всей серии"
	msgForbidden          = "доступ запрещен"
	msgUserNotFound       = "пользователь не найден"
	msgConfigMissing      = "расписание ещё не настроено"
)

type Handler struct {
	useCase CreateBatchBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBatchBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/batch
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBatchBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(viewer))
	if err != nil {
		switch {
		case errors.Is(err, createBatchBooking.ErrInvalidInput),
			errors.Is(err, createBatchBooking.ErrValidationFailed):
			h.logger.Warn("POST /bookings/batch - Invalid input: user_id=%d, error=%v", viewer.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBatchBooking.ErrNoSlotsInRange):
			h.logger.Warn("POST /bookings/batch - No slots in range: user_id=%d", viewer.UserID)
			handlers.RespondBadRequest(w, msgNoSlots)

		case errors.Is(err, createBatchBooking.ErrSlotUnavailablePartial):
			h.logger.Warn("POST /bookings/batch - Some slots are taken: user_id=%d", viewer.UserID)
			handlers.RespondGone(w, msgPartial)

		case errors.Is(err, createBatchBooking.ErrTooLateToBook):
			handlers.RespondGone(w, msgTooLateToBook)

		case errors.Is(err, createBatchBooking.ErrOutsideHorizon):
			handlers.RespondGone(w, msgOutsideHorizon)

		case errors.Is(err, createBatchBooking.ErrDailyLimitExceeded):
			h.logger.Warn("POST /bookings/batch - Daily limit exceeded: user_id=%d", viewer.UserID)
			handlers.RespondForbidden(w, msgDailyLimit)

		case errors.Is(err, createBatchBooking.ErrPointsExhausted):
			h.logger.Warn("POST /bookings/batch - Points exhausted: user_id=%d", viewer.UserID)
			handlers.RespondForbidden(w, msgPointsExhausted)

		case errors.Is(err, createBatchBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBatchBooking.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBatchBooking.ErrConfigMissing):
			h.logger.Warn("POST /bookings/batch - Settings are missing")
			handlers.RespondServiceUnavailable(w, msgConfigMissing)

		default:
			h.logger.Error("POST /bookings/batch - Failed to create bookings: user_id=%d, error=%v", viewer.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/batch - %d bookings created for user_id=%d", len(result.Unixes), result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, &CreateBatchBookingResponse{
		UserID:   result.UserID,
		BookedAt: result.BookedAt,
		Unixes:   result.Unixes,
	})
}
