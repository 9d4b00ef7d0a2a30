package update_booking

import (
	"fmt"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// validateRequest валидирует форму запроса (без обращения к хранилищу)
func validateRequest(req *Request) error {
	if req.Principal.ID <= 0 {
		return fmt.Errorf("%w: principal id must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.TicketsNumber == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	return nil
}

// validateTickets проверяет количество билетов против политики
// maxTickets = 0 означает отсутствие верхней границы
func validateTickets(tickets int, maxTickets int) error {
	if tickets < domain.MinTicketsPerBooking {
		return fmt.Errorf("%w: tickets number must be at least %d", ErrInvalidTickets, domain.MinTicketsPerBooking)
	}
	if maxTickets > 0 && tickets > maxTickets {
		return fmt.Errorf("%w: tickets number must not exceed %d", ErrInvalidTickets, maxTickets)
	}
	return nil
}
