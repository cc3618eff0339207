package models

import (
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// CloseSlotRequest запрос на закрытие слота администратором
type CloseSlotRequest struct {
	Unix int64 `json:"unix"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	Unix     int64  `json:"unix"`
	Date     string `json:"date"` // "2024-01-12"
	Time     string `json:"time"` // "10:00"
	BookedAt int64  `json:"bookedAt"`
	UserID   *int64 `json:"userId"`
	Closed   bool   `json:"closed"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	start := time.Unix(b.Unix, 0).In(loc)
	return &BookingResponse{
		Unix:     b.Unix,
		Date:     start.Format(domain.DateFormat),
		Time:     start.Format(domain.TimeFormat),
		BookedAt: b.BookedAt,
		UserID:   b.UserID,
		Closed:   b.IsClosed(),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b, loc))
	}
	return result
}
