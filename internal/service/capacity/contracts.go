package capacity

import (
	"context"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// ActivityRepository интерфейс репозитория активностей
// GetByIDForUpdate должен блокировать строку активности до конца транзакции
type ActivityRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Activity, error)
	UpdateCapacity(ctx context.Context, id int64, capacity int) error
}
