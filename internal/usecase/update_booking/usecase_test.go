package update_booking

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
	"github.com/m04kA/FMP-BookingService/pkg/ptr"
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

func (f *fakeBookingRepo) UpdateTickets(_ context.Context, id int64, tickets int, status domain.BookingStatus) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.booking.TicketsNumber = tickets
	f.booking.Status = status
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

// newTestUseCase бронирование id=1 пользователя 10 на 3 билета,
// активность id=1: max 10, занято 5 (3 этим бронированием)
func newTestUseCase(maxTickets int) (*UseCase, *fakeBookingRepo, *fakeActivityRepo) {
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
	uc := NewUseCase(bRepo, capacity.NewLedger(aRepo), passthroughTxManager{}, maxTickets, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc, bRepo, aRepo
}

func TestUpdateBooking(t *testing.T) {
	owner := domain.Principal{ID: 10, Role: domain.RoleCustomer}
	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}

	t.Run("increase reserves the difference", func(t *testing.T) {
		uc, bRepo, aRepo := newTestUseCase(10)

		resp, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(5),
		})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.TicketsNumber)
		assert.Equal(t, 5, bRepo.booking.TicketsNumber)
		assert.Equal(t, 7, aRepo.activity.CurrentCapacity)
	})

	t.Run("decrease releases the difference", func(t *testing.T) {
		uc, _, aRepo := newTestUseCase(10)

		resp, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.TicketsNumber)
		assert.Equal(t, 3, aRepo.activity.CurrentCapacity)
	})

	t.Run("same tickets number leaves capacity untouched", func(t *testing.T) {
		uc, _, aRepo := newTestUseCase(10)

		resp, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TicketsNumber)
		assert.Equal(t, 5, aRepo.activity.CurrentCapacity)
	})

	t.Run("increase beyond capacity carries available count", func(t *testing.T) {
		// Свободно 5, своих 3: для этого бронирования доступно 8, запрошено 9
		uc, bRepo, aRepo := newTestUseCase(20)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(9),
		})
		assert.ErrorIs(t, err, ErrNotEnoughSpots)

		var spotsErr *NotEnoughSpotsError
		require.ErrorAs(t, err, &spotsErr)
		assert.Equal(t, 8, spotsErr.SpotsLeft)

		assert.Equal(t, 3, bRepo.booking.TicketsNumber)
		assert.Equal(t, 5, aRepo.activity.CurrentCapacity)
	})

	t.Run("admin can update someone else's booking", func(t *testing.T) {
		uc, bRepo, _ := newTestUseCase(10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: admin, BookingID: 1, TicketsNumber: ptr.Ptr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, 4, bRepo.booking.TicketsNumber)
	})

	t.Run("stranger denied", func(t *testing.T) {
		uc, _, _ := newTestUseCase(10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: domain.Principal{ID: 99, Role: domain.RoleCustomer},
			BookingID: 1, TicketsNumber: ptr.Ptr(4),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uc, _, _ := newTestUseCase(10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 42, TicketsNumber: ptr.Ptr(4),
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("past activity frozen", func(t *testing.T) {
		uc, bRepo, _ := newTestUseCase(10)
		bRepo.activity.DateTime = testNow.Add(-time.Hour)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(4),
		})
		assert.ErrorIs(t, err, ErrActivityInPast)
	})

	t.Run("tickets out of policy bounds", func(t *testing.T) {
		uc, _, _ := newTestUseCase(10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(0),
		})
		assert.ErrorIs(t, err, ErrInvalidTickets)

		_, err = uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1, TicketsNumber: ptr.Ptr(11),
		})
		assert.ErrorIs(t, err, ErrInvalidTickets)
	})

	t.Run("no fields to update", func(t *testing.T) {
		uc, _, _ := newTestUseCase(10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: owner, BookingID: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
