package capacity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
)

// fakeActivityRepo репозиторий в памяти для тестов ledger-а
type fakeActivityRepo struct {
	activity       *domain.Activity
	capacityWrites []int
}

func (f *fakeActivityRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Activity, error) {
	if f.activity == nil || f.activity.ID != id {
		return nil, activityRepo.ErrActivityNotFound
	}
	copied := *f.activity
	return &copied, nil
}

func (f *fakeActivityRepo) UpdateCapacity(_ context.Context, id int64, capacity int) error {
	if f.activity == nil || f.activity.ID != id {
		return activityRepo.ErrActivityNotFound
	}
	f.activity.CurrentCapacity = capacity
	f.capacityWrites = append(f.capacityWrites, capacity)
	return nil
}

func newFakeRepo(maxCapacity, currentCapacity int) *fakeActivityRepo {
	return &fakeActivityRepo{
		activity: &domain.Activity{ID: 1, MaxCapacity: maxCapacity, CurrentCapacity: currentCapacity},
	}
}

func TestLedgerReserve(t *testing.T) {
	t.Run("reserve within capacity", func(t *testing.T) {
		repo := newFakeRepo(5, 3)
		ledger := NewLedger(repo)

		activity, err := ledger.Reserve(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, activity.CurrentCapacity)
		assert.Equal(t, 5, repo.activity.CurrentCapacity)
	})

	t.Run("reserve exceeding capacity leaves counter untouched", func(t *testing.T) {
		repo := newFakeRepo(5, 4)
		ledger := NewLedger(repo)

		_, err := ledger.Reserve(context.Background(), 1, 2)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		// Сообщение различимо для клиента: сколько мест осталось
		assert.Contains(t, err.Error(), "only 1 of 5 spots remaining")

		assert.Equal(t, 4, repo.activity.CurrentCapacity)
		assert.Empty(t, repo.capacityWrites)
	})

	t.Run("reserve exactly to max capacity", func(t *testing.T) {
		repo := newFakeRepo(5, 0)
		ledger := NewLedger(repo)

		activity, err := ledger.Reserve(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, activity.CurrentCapacity)
	})

	t.Run("negative delta releases capacity", func(t *testing.T) {
		repo := newFakeRepo(5, 3)
		ledger := NewLedger(repo)

		activity, err := ledger.Reserve(context.Background(), 1, -3)
		require.NoError(t, err)
		assert.Equal(t, 0, activity.CurrentCapacity)
	})

	t.Run("unknown activity", func(t *testing.T) {
		ledger := NewLedger(newFakeRepo(5, 0))

		_, err := ledger.Reserve(context.Background(), 42, 1)
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})
}

func TestLedgerRelease(t *testing.T) {
	t.Run("release returns tickets to the pool", func(t *testing.T) {
		repo := newFakeRepo(5, 3)
		ledger := NewLedger(repo)

		activity, err := ledger.Release(context.Background(), 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, activity.CurrentCapacity)
	})

	t.Run("release below zero clamps at zero", func(t *testing.T) {
		repo := newFakeRepo(5, 2)
		ledger := NewLedger(repo)

		activity, err := ledger.Release(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, activity.CurrentCapacity)
		assert.Equal(t, []int{0}, repo.capacityWrites)
	})
}
