package settings

import "errors"

var (
	// ErrConfigMissing возвращается, когда настройки расписания ещё не созданы
	ErrConfigMissing = errors.New("settings: schedule settings are missing")

	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrTooManySlots возвращается, когда слоты дня не помещаются до 23:55
	ErrTooManySlots = errors.New("settings: too many slots for the day")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
