package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FMP-BookingService/internal/service/capacity"
)

// fakeBookingRepo репозиторий бронирований в памяти
type fakeBookingRepo struct {
	booking  *domain.Booking
	activity *domain.Activity
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	copied.Activity = f.activity
	return &copied, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.booking = nil
	return nil
}

// fakeActivityRepo репозиторий активностей в памяти для ledger-а
type fakeActivityRepo struct {
	activity *domain.Activity
}

func (f *fakeActivityRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Activity, error) {
	if f.activity == nil || f.activity.ID != id {
		return nil, activityRepo.ErrActivityNotFound
	}
	copied := *f.activity
	return &copied, nil
}

func (f *fakeActivityRepo) UpdateCapacity(_ context.Context, id int64, cap int) error {
	if f.activity == nil || f.activity.ID != id {
		return activityRepo.ErrActivityNotFound
	}
	f.activity.CurrentCapacity = cap
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestUseCase() (*UseCase, *fakeBookingRepo, *fakeActivityRepo) {
	activity := &domain.Activity{
		ID:              1,
		Title:           "Morning yoga",
		DateTime:        testNow.AddDate(0, 0, 5),
		MaxCapacity:     10,
		CurrentCapacity: 5,
		IsActive:        true,
	}
	bRepo := &fakeBookingRepo{
		booking: &domain.Booking{
			ID: 1, UserID: 10, ActivityID: 1,
			TicketsNumber: 3, Status: domain.StatusUpcoming,
		},
		activity: activity,
	}
	aRepo := &fakeActivityRepo{activity: activity}
	uc := NewUseCase(bRepo, capacity.NewLedger(aRepo), passthroughTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc, bRepo, aRepo
}

func TestCancelBooking(t *testing.T) {
	owner := domain.Principal{ID: 10, Role: domain.RoleCustomer}

	t.Run("owner cancels and spots return to the pool", func(t *testing.T) {
		uc, bRepo, aRepo := newTestUseCase()

		resp, err := uc.Execute(context.Background(), &Request{Principal: owner, BookingID: 1})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.BookingID)
		assert.Equal(t, 3, resp.SpotsReleased)
		assert.Nil(t, bRepo.booking)
		assert.Equal(t, 2, aRepo.activity.CurrentCapacity)
	})

	t.Run("admin cancels someone else's booking", func(t *testing.T) {
		uc, bRepo, _ := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			Principal: domain.Principal{ID: 1, Role: domain.RoleAdmin},
			BookingID: 1,
		})
		require.NoError(t, err)
		assert.Nil(t, bRepo.booking)
	})

	t.Run("stranger denied", func(t *testing.T) {
		uc, bRepo, aRepo := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			Principal: domain.Principal{ID: 99, Role: domain.RoleCustomer},
			BookingID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.NotNil(t, bRepo.booking)
		assert.Equal(t, 5, aRepo.activity.CurrentCapacity)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uc, _, _ := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{Principal: owner, BookingID: 42})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("past activity frozen", func(t *testing.T) {
		uc, bRepo, _ := newTestUseCase()
		bRepo.activity.DateTime = testNow.Add(-time.Hour)

		_, err := uc.Execute(context.Background(), &Request{Principal: owner, BookingID: 1})
		assert.ErrorIs(t, err, ErrActivityInPast)
		assert.NotNil(t, bRepo.booking)
	})

	t.Run("cancel is idempotent at most once", func(t *testing.T) {
		uc, _, _ := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{Principal: owner, BookingID: 1})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{Principal: owner, BookingID: 1})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
