package update_booking

import (
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// Request модель запроса на изменение бронирования
type Request struct {
	Principal     domain.Principal
	BookingID     int64
	TicketsNumber *int // Новое количество билетов (опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID            int64
	UserID        int64
	ActivityID    int64
	TicketsNumber int
	Status        string
	BookedAt      time.Time

	User     *domain.User
	Activity *domain.Activity
}

// FromDomainBooking конвертирует domain модель в ответ usecase
func FromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		UserID:        b.UserID,
		ActivityID:    b.ActivityID,
		TicketsNumber: b.TicketsNumber,
		Status:        string(b.Status),
		BookedAt:      b.BookedAt,
		User:          b.User,
		Activity:      b.Activity,
	}
}
