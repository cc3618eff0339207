package create_booking

import "errors"

var (
	// ErrConfigMissing возвращается, когда настройки расписания ещё не созданы
	ErrConfigMissing = errors.New("create_booking: schedule settings are missing")

	// ErrSlotNotAvailable возвращается, когда на это время уже есть бронирование
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда до начала слота осталось меньше expireOffset
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideHorizon возвращается, когда слот позже lastBookableDay
	ErrOutsideHorizon = errors.New("create_booking: slot is beyond the last bookable day")

	// ErrDailyLimitExceeded возвращается, когда у пользователя уже максимум бронирований на этот день
	ErrDailyLimitExceeded = errors.New("create_booking: daily booking limit exceeded")

	// ErrPointsExhausted возвращается, когда у пользователя не осталось очков
	ErrPointsExhausted = errors.New("create_booking: not enough points")

	// ErrUserNotFound возвращается, когда администратор бронирует за несуществующего пользователя
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrAccessDenied возвращается, когда пользователь бронирует слот за другого
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
