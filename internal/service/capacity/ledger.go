package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
)

// Ledger единица взаимного исключения для current_capacity активности.
// Каждая операция - одно чтение-проверка-запись над строкой активности,
// захваченной FOR UPDATE: конкурентные бронирования одной активности
// сериализуются, бронирования разных активностей идут параллельно.
// Вызывается только внутри транзакции (txmanager.DoSerializable);
// изменение capacity фиксируется или откатывается вместе со строкой бронирования
type Ledger struct {
	activityRepo ActivityRepository
}

// NewLedger создает новый ledger поверх репозитория активностей
func NewLedger(activityRepo ActivityRepository) *Ledger {
	return &Ledger{activityRepo: activityRepo}
}

// Reserve резервирует delta мест на активности
// Отрицательная delta освобождает места
// Возвращает ErrCapacityExceeded с количеством оставшихся мест,
// если current_capacity + delta > max_capacity
func (l *Ledger) Reserve(ctx context.Context, activityID int64, delta int) (*domain.Activity, error) {
	activity, err := l.activityRepo.GetByIDForUpdate(ctx, activityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("%w: Reserve - get activity id=%d: %v", ErrInternal, activityID, err)
	}

	next := activity.CurrentCapacity + delta
	if next > activity.MaxCapacity {
		return nil, fmt.Errorf("%w: only %d of %d spots remaining",
			ErrCapacityExceeded, activity.AvailableSpots(), activity.MaxCapacity)
	}
	if next < 0 {
		// Освобождение большего, чем зарезервировано, не ошибка:
		// счетчик прижимается к нулю, инвариант 0 <= current_capacity восстанавливается
		next = 0
	}

	if err := l.activityRepo.UpdateCapacity(ctx, activityID, next); err != nil {
		return nil, fmt.Errorf("%w: Reserve - update capacity id=%d: %v", ErrInternal, activityID, err)
	}

	activity.CurrentCapacity = next
	return activity, nil
}

// Release освобождает tickets мест на активности
// Эквивалентно Reserve с отрицательной дельтой, пол прижат к нулю
func (l *Ledger) Release(ctx context.Context, activityID int64, tickets int) (*domain.Activity, error) {
	return l.Reserve(ctx, activityID, -tickets)
}
