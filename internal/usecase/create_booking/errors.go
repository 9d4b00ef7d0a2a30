package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrAdminCannotBook возвращается при попытке администратора забронировать активность
	ErrAdminCannotBook = errors.New("create_booking: admins cannot book activities")

	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("create_booking: activity not found")

	// ErrActivityInPast возвращается при попытке забронировать прошедшую активность
	ErrActivityInPast = errors.New("create_booking: cannot book past activities")

	// ErrInvalidTickets возвращается при некорректном количестве билетов
	ErrInvalidTickets = errors.New("create_booking: invalid tickets number")

	// ErrNotEnoughSpots возвращается, когда на активности не хватает мест
	ErrNotEnoughSpots = errors.New("create_booking: not enough spots available")

	// ErrAlreadyBooked возвращается, когда у пользователя уже есть бронирование этой активности
	ErrAlreadyBooked = errors.New("create_booking: activity already booked by this user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// NotEnoughSpotsError ошибка нехватки мест с количеством оставшихся
// Количество нужно клиенту, чтобы отличить "мест нет вообще" от "запрошено слишком много"
type NotEnoughSpotsError struct {
	SpotsLeft int
}

func (e *NotEnoughSpotsError) Error() string {
	return fmt.Sprintf("create_booking: not enough spots available, %d remaining", e.SpotsLeft)
}

// Is позволяет сравнивать ошибку с ErrNotEnoughSpots через errors.Is
func (e *NotEnoughSpotsError) Is(target error) bool {
	return target == ErrNotEnoughSpots
}
