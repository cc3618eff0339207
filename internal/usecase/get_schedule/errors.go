package get_schedule

import "errors"

var (
	// ErrConfigMissing возвращается, когда настройки расписания ещё не созданы
	ErrConfigMissing = errors.New("get_schedule: schedule settings are missing")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_schedule: internal error")
)
