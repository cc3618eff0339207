package get_slot_template

import (
	"context"

	getSlotTemplate "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_slot_template"
)

type GetSlotTemplateUseCase interface {
	Execute(ctx context.Context) (*getSlotTemplate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
