package update_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда актор не владелец и не администратор
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrActivityInPast возвращается при попытке изменить бронирование прошедшей активности
	ErrActivityInPast = errors.New("update_booking: cannot update booking for past activities")

	// ErrInvalidTickets возвращается при некорректном количестве билетов
	ErrInvalidTickets = errors.New("update_booking: invalid tickets number")

	// ErrNotEnoughSpots возвращается, когда увеличение не помещается в max_capacity
	ErrNotEnoughSpots = errors.New("update_booking: not enough spots available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)

// NotEnoughSpotsError ошибка нехватки мест с количеством доступных для этого бронирования
type NotEnoughSpotsError struct {
	SpotsLeft int
}

func (e *NotEnoughSpotsError) Error() string {
	return fmt.Sprintf("update_booking: not enough spots available, %d available for this booking", e.SpotsLeft)
}

// Is позволяет сравнивать ошибку с ErrNotEnoughSpots через errors.Is
func (e *NotEnoughSpotsError) Is(target error) bool {
	return target == ErrNotEnoughSpots
}
