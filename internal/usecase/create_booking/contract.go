package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserAndActivity(ctx context.Context, userID, activityID int64) (*domain.Booking, error)
}

// CapacityLedger интерфейс ledger-а емкости активностей
type CapacityLedger interface {
	Reserve(ctx context.Context, activityID int64, delta int) (*domain.Activity, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Activity, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
