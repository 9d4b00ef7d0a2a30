package get_booking_stats

import (
	"context"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Stats(ctx context.Context, principal domain.Principal) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
