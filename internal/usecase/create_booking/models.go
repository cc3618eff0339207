package create_booking

import "github.com/m04kA/SMC-SlotScheduler/internal/domain"

// Request запрос на бронирование одного слота
type Request struct {
	Viewer domain.Viewer
	Unix   int64
	// UserID владелец бронирования; 0 означает автора запроса.
	// Бронировать за другого может только администратор.
	UserID int64
}

// Response созданное бронирование
type Response struct {
	Unix     int64
	BookedAt int64
	UserID   int64
}
