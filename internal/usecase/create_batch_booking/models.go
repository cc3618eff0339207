package create_batch_booking

import "github.com/m04kA/SMC-SlotScheduler/internal/domain"

// Request запрос на еженедельную серию бронирований
type Request struct {
	Viewer domain.Viewer
	// UserID владелец серии; 0 означает автора запроса
	UserID int64
	// Weekday день недели, 0 = воскресенье
	Weekday int
	// Unix образец слота: из него берутся часы и минуты
	Unix int64
	// From, To границы серии в unix-секундах, To не включается
	From int64
	To   int64
}

// Response созданные бронирования в порядке времени
type Response struct {
	UserID   int64
	BookedAt int64
	Unixes   []int64
}
