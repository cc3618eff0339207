package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки расписания ещё не созданы
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrCorruptSettings возвращается, когда сохранённый шаблон недели повреждён
	ErrCorruptSettings = errors.New("settings.repository: corrupt week template")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
