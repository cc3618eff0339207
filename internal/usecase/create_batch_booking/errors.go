package create_batch_booking

import "errors"

var (
	// ErrConfigMissing возвращается, когда настройки расписания ещё не созданы
	ErrConfigMissing = errors.New("create_batch_booking: schedule settings are missing")

	// ErrSlotUnavailablePartial возвращается, когда хотя бы один слот серии уже занят.
	// В этом случае не сохраняется ни одно бронирование.
	ErrSlotUnavailablePartial = errors.New("create_batch_booking: some slots are not available")

	// ErrValidationFailed возвращается, когда один из слотов серии некорректен
	ErrValidationFailed = errors.New("create_batch_booking: booking draft validation failed")

	// ErrTooLateToBook возвращается, когда до начала одного из слотов осталось меньше expireOffset
	ErrTooLateToBook = errors.New("create_batch_booking: too late to book one of the slots")

	// ErrOutsideHorizon возвращается, когда один из слотов позже lastBookableDay
	ErrOutsideHorizon = errors.New("create_batch_booking: slot is beyond the last bookable day")

	// ErrNoSlotsInRange возвращается, когда в диапазоне нет ни одного подходящего дня
	ErrNoSlotsInRange = errors.New("create_batch_booking: no slots in range")

	// ErrDailyLimitExceeded возвращается при превышении дневного лимита хотя бы в один из дней
	ErrDailyLimitExceeded = errors.New("create_batch_booking: daily booking limit exceeded")

	// ErrPointsExhausted возвращается, когда очков не хватает на всю серию
	ErrPointsExhausted = errors.New("create_batch_booking: not enough points")

	// ErrUserNotFound возвращается, когда администратор бронирует за несуществующего пользователя
	ErrUserNotFound = errors.New("create_batch_booking: user not found")

	// ErrAccessDenied возвращается, когда пользователь бронирует серию за другого
	ErrAccessDenied = errors.New("create_batch_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_batch_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_batch_booking: internal error")
)
