package get_slot_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/handlers"
	getSlotTemplate "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_slot_template"
)

const (
	msgConfigMissing = "расписание ещё не настроено"
)

// DayPreviewResponse времена слотов одного дня недели
type DayPreviewResponse struct {
	Weekday int      `json:"weekday"`
	Off     bool     `json:"off"`
	Slots   []string `json:"slots"`
}

type Handler struct {
	useCase GetSlotTemplateUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, getSlotTemplate.ErrConfigMissing):
			h.logger.Warn("GET /schedule/template - Settings are missing")
			handlers.RespondServiceUnavailable(w, msgConfigMissing)

		default:
			h.logger.Error("GET /schedule/template - Failed to build template: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	week := make([]DayPreviewResponse, 0, len(result.Week))
	for _, day := range result.Week {
		week = append(week, DayPreviewResponse{
			Weekday: int(day.Weekday),
			Off:     day.Off,
			Slots:   day.Slots,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, week)
}
