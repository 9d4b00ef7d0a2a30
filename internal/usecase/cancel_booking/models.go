package cancel_booking

import "github.com/m04kA/FMP-BookingService/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	Principal domain.Principal
	BookingID int64
}

// Response модель ответа на отмену бронирования
type Response struct {
	BookingID  int64
	ActivityID int64
	// SpotsReleased количество освобожденных мест
	SpotsReleased int
}
