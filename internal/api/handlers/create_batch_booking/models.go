package create_batch_booking

import (
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	createBatchBooking "github.com/m04kA/SMC-SlotScheduler/internal/usecase/create_batch_booking"
)

// CreateBatchBookingRequest HTTP request model
type CreateBatchBookingRequest struct {
	UserID  *int64 `json:"userId,omitempty"`
	Weekday int    `json:"weekday"` // 0 = воскресенье
	Unix    int64  `json:"unix"`    // образец слота: часы и минуты
	From    int64  `json:"from"`
	To      int64  `json:"to"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBatchBookingRequest) ToUseCaseRequest(viewer domain.Viewer) *createBatchBooking.Request {
	req := &createBatchBooking.Request{
		Viewer:  viewer,
		Weekday: r.Weekday,
		Unix:    r.Unix,
		From:    r.From,
		To:      r.To,
	}
	if r.UserID != nil {
		req.UserID = *r.UserID
	}
	return req
}

// CreateBatchBookingResponse HTTP response model
type CreateBatchBookingResponse struct {
	UserID   int64   `json:"userId"`
	BookedAt int64   `json:"bookedAt"`
	Unixes   []int64 `json:"unixes"`
}
