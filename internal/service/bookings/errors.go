package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotNotAvailable возвращается при закрытии уже занятого слота
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда до начала слота осталось меньше cancelationNotice часов
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrConfigMissing возвращается, когда настройки расписания ещё не созданы
	ErrConfigMissing = errors.New("schedule settings are missing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
