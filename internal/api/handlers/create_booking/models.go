package create_booking

import (
	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/FMP-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ActivityID    int64 `json:"activity_id" validate:"required,gt=0"`
	TicketsNumber int   `json:"tickets_number" validate:"required,gte=1"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal domain.Principal) *createBooking.Request {
	return &createBooking.Request{
		Principal:     principal,
		ActivityID:    r.ActivityID,
		TicketsNumber: r.TicketsNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
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
