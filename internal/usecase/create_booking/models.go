package create_booking

import (
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Principal     domain.Principal // Аутентифицированный пользователь
	ActivityID    int64            // ID активности
	TicketsNumber int              // Количество билетов (>= 1)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	UserID        int64
	ActivityID    int64
	TicketsNumber int
	Status        string
	BookedAt      time.Time

	// Денормализованные данные для композиции ответа
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
