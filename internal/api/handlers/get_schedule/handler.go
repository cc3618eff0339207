package get_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	getSchedule "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_schedule"
)

const (
	msgUnauthorized  = "пользователь не авторизован"
	msgConfigMissing = "расписание ещё не настроено"
)

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.GetViewer(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSchedule.Request{Viewer: viewer})
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrConfigMissing):
			h.logger.Warn("GET /schedule - Settings are missing")
			handlers.RespondServiceUnavailable(w, msgConfigMissing)

		default:
			h.logger.Error("GET /schedule - Failed to build schedule: user_id=%d, error=%v", viewer.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule - Schedule built: user_id=%d, days=%d", viewer.UserID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, viewer))
}
