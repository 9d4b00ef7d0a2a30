package update_booking

import (
	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/FMP-BookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	TicketsNumber *int `json:"tickets_number,omitempty" validate:"omitempty,gte=1"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(principal domain.Principal, bookingID int64) *updateBooking.Request {
	return &updateBooking.Request{
		Principal:     principal,
		BookingID:     bookingID,
		TicketsNumber: r.TicketsNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *models.BookingResponse {
	return &models.BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		ActivityID:    resp.ActivityID,
		TicketsNumber: resp.TicketsNumber,
		Status:        resp.Status,
		BookedAt:      resp.BookedAt,
		User:          models.FromDomainUser(resp.User),
		Activity:      models.FromDomainActivity(resp.Activity),
	}
}
