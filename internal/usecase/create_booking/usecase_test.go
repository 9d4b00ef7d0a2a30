package create_booking

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
	nextID   int64
	bookings map[int64]*domain.Booking
	activity *domain.Activity
}

func newFakeBookingRepo(activity *domain.Activity) *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: map[int64]*domain.Booking{}, activity: activity}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	for _, existing := range f.bookings {
		if existing.UserID == b.UserID && existing.ActivityID == b.ActivityID {
			return nil, bookingRepo.ErrDuplicateBooking
		}
	}
	created := *b
	created.ID = f.nextID
	created.BookedAt = time.Now()
	f.nextID++
	f.bookings[created.ID] = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	copied.Activity = f.activity
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserAndActivity(_ context.Context, userID, activityID int64) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.UserID == userID && b.ActivityID == activityID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

// fakeActivityRepo репозиторий активностей в памяти,
// обслуживает и usecase, и ledger
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

// passthroughTxManager выполняет fn без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider возвращает зафиксированное время
type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestUseCase(activity *domain.Activity, maxTickets int) (*UseCase, *fakeBookingRepo, *fakeActivityRepo) {
	aRepo := &fakeActivityRepo{activity: activity}
	bRepo := newFakeBookingRepo(activity)
	uc := NewUseCase(bRepo, aRepo, capacity.NewLedger(aRepo), passthroughTxManager{}, maxTickets, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc, bRepo, aRepo
}

func upcomingActivity(maxCapacity, currentCapacity int) *domain.Activity {
	return &domain.Activity{
		ID:              1,
		Title:           "Morning yoga",
		DateTime:        testNow.AddDate(0, 0, 5),
		MaxCapacity:     maxCapacity,
		CurrentCapacity: currentCapacity,
		IsActive:        true,
	}
}

func TestCreateBooking(t *testing.T) {
	customer := domain.Principal{ID: 10, Role: domain.RoleCustomer}

	t.Run("successful booking reserves capacity", func(t *testing.T) {
		uc, bRepo, aRepo := newTestUseCase(upcomingActivity(5, 3), 10)

		resp, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 2,
		})
		require.NoError(t, err)

		assert.Equal(t, customer.ID, resp.UserID)
		assert.Equal(t, int64(1), resp.ActivityID)
		assert.Equal(t, 2, resp.TicketsNumber)
		assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
		assert.Equal(t, 5, aRepo.activity.CurrentCapacity)
		assert.Len(t, bRepo.bookings, 1)
	})

	t.Run("booking on the activity day gets today status", func(t *testing.T) {
		activity := upcomingActivity(5, 0)
		activity.DateTime = time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
		uc, _, _ := newTestUseCase(activity, 10)

		resp, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusToday), resp.Status)
	})

	t.Run("not enough spots carries remaining count", func(t *testing.T) {
		uc, bRepo, _ := newTestUseCase(upcomingActivity(5, 4), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 2,
		})
		assert.ErrorIs(t, err, ErrNotEnoughSpots)

		var spotsErr *NotEnoughSpotsError
		require.ErrorAs(t, err, &spotsErr)
		assert.Equal(t, 1, spotsErr.SpotsLeft)
		assert.Empty(t, bRepo.bookings)
	})

	t.Run("fully booked activity rejects even one ticket", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(5, 5), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		var spotsErr *NotEnoughSpotsError
		require.ErrorAs(t, err, &spotsErr)
		assert.Equal(t, 0, spotsErr.SpotsLeft)
	})

	t.Run("duplicate booking rejected", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(10, 0), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 2,
		})
		assert.ErrorIs(t, err, ErrAlreadyBooked)
	})

	t.Run("admin cannot book", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(5, 0), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal:     domain.Principal{ID: 1, Role: domain.RoleAdmin},
			ActivityID:    1,
			TicketsNumber: 1,
		})
		assert.ErrorIs(t, err, ErrAdminCannotBook)
	})

	t.Run("past activity rejected", func(t *testing.T) {
		activity := upcomingActivity(5, 0)
		activity.DateTime = testNow.Add(-time.Hour)
		uc, _, _ := newTestUseCase(activity, 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		assert.ErrorIs(t, err, ErrActivityInPast)
	})

	t.Run("inactive activity treated as not found", func(t *testing.T) {
		activity := upcomingActivity(5, 0)
		activity.IsActive = false
		uc, _, _ := newTestUseCase(activity, 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("unknown activity", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(5, 0), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 42, TicketsNumber: 1,
		})
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("tickets below minimum", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(5, 0), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidTickets)
	})

	t.Run("tickets above policy limit", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(50, 0), 10)

		_, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 11,
		})
		assert.ErrorIs(t, err, ErrInvalidTickets)
	})

	t.Run("zero policy limit means unlimited", func(t *testing.T) {
		uc, _, _ := newTestUseCase(upcomingActivity(50, 0), 0)

		resp, err := uc.Execute(context.Background(), &Request{
			Principal: customer, ActivityID: 1, TicketsNumber: 30,
		})
		require.NoError(t, err)
		assert.Equal(t, 30, resp.TicketsNumber)
	})
}
