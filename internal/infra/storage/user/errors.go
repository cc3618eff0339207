package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrNotEnoughPoints возвращается, когда баланс очков ушёл бы в минус
	ErrNotEnoughPoints = errors.New("user.repository: not enough points")

	// ErrPointsChanged возвращается, когда баланс изменился с момента чтения
	ErrPointsChanged = errors.New("user.repository: points changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
