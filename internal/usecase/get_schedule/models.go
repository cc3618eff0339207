package get_schedule

import "github.com/m04kA/SMC-SlotScheduler/internal/domain"

// Request запрос расписания от имени пользователя
type Request struct {
	Viewer domain.Viewer
}

// Response расписание на весь горизонт, по одному элементу на календарный день
type Response struct {
	Days []domain.DaySchedule
}
