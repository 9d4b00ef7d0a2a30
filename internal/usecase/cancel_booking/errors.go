package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда актор не владелец и не администратор
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrActivityInPast возвращается при попытке отменить бронирование прошедшей активности
	ErrActivityInPast = errors.New("cancel_booking: cannot cancel booking for past activities")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
