package create_booking

import (
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Unix   int64  `json:"unix"`
	UserID *int64 `json:"userId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(viewer domain.Viewer) *createBooking.Request {
	req := &createBooking.Request{
		Viewer: viewer,
		Unix:   r.Unix,
	}
	if r.UserID != nil {
		req.UserID = *r.UserID
	}
	return req
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Unix     int64 `json:"unix"`
	BookedAt int64 `json:"bookedAt"`
	UserID   int64 `json:"userId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Unix:     resp.Unix,
		BookedAt: resp.BookedAt,
		UserID:   resp.UserID,
	}
}
