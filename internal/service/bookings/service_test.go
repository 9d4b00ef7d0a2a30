package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
	"github.com/m04kA/FMP-BookingService/pkg/ptr"
)

// fakeBookingRepo репозиторий бронирований в памяти
type fakeBookingRepo struct {
	bookings      []*domain.Booking
	statusWrites  map[int64]domain.BookingStatus
	activityByID  map[int64]*domain.Activity
}

func newFakeBookingRepo(activities map[int64]*domain.Activity, bookings ...*domain.Booking) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:     bookings,
		statusWrites: map[int64]domain.BookingStatus{},
		activityByID: activities,
	}
}

func (f *fakeBookingRepo) hydrate(b *domain.Booking) *domain.Booking {
	copied := *b
	copied.Activity = f.activityByID[b.ActivityID]
	return &copied
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return f.hydrate(b), nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByUserAndActivity(_ context.Context, userID, activityID int64) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.UserID == userID && b.ActivityID == activityID {
			return f.hydrate(b), nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.ActivityID != nil && b.ActivityID != *filter.ActivityID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, f.hydrate(b))
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = status
			f.statusWrites[id] = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// fakeActivityRepo репозиторий активностей в памяти
type fakeActivityRepo struct {
	activities map[int64]*domain.Activity
}

func (f *fakeActivityRepo) GetByID(_ context.Context, id int64) (*domain.Activity, error) {
	a, ok := f.activities[id]
	if !ok {
		return nil, activityRepo.ErrActivityNotFound
	}
	copied := *a
	return &copied, nil
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(activities map[int64]*domain.Activity, bookings ...*domain.Booking) (*Service, *fakeBookingRepo) {
	bRepo := newFakeBookingRepo(activities, bookings...)
	svc := NewService(bRepo, &fakeActivityRepo{activities: activities}, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}
	return svc, bRepo
}

func testActivity(id int64, at time.Time, maxCap, curCap int) *domain.Activity {
	return &domain.Activity{
		ID: id, Title: "Activity", DateTime: at,
		MaxCapacity: maxCap, CurrentCapacity: curCap, IsActive: true,
	}
}

func TestGetByID(t *testing.T) {
	owner := domain.Principal{ID: 10, Role: domain.RoleCustomer}
	activities := map[int64]*domain.Activity{
		1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 2),
	}
	booking := &domain.Booking{ID: 1, UserID: 10, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming}

	t.Run("owner reads own booking", func(t *testing.T) {
		svc, _ := newTestService(activities, booking)

		resp, err := svc.GetByID(context.Background(), owner, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "upcoming", resp.Status)
		require.NotNil(t, resp.Activity)
		assert.Equal(t, int64(1), resp.Activity.ID)
	})

	t.Run("admin reads any booking", func(t *testing.T) {
		svc, _ := newTestService(activities, booking)

		_, err := svc.GetByID(context.Background(), domain.Principal{ID: 1, Role: domain.RoleAdmin}, 1)
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc, _ := newTestService(activities, booking)

		_, err := svc.GetByID(context.Background(), domain.Principal{ID: 99, Role: domain.RoleCustomer}, 1)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestService(activities, booking)

		_, err := svc.GetByID(context.Background(), owner, 42)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("drifted status recomputed and persisted", func(t *testing.T) {
		drifted := map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, -3), 10, 2),
		}
		stale := &domain.Booking{ID: 1, UserID: 10, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming}
		svc, bRepo := newTestService(drifted, stale)

		resp, err := svc.GetByID(context.Background(), owner, 1)
		require.NoError(t, err)
		assert.Equal(t, "past", resp.Status)
		assert.Equal(t, domain.StatusPast, bRepo.statusWrites[1])
	})
}

func TestGetUserBookings(t *testing.T) {
	owner := domain.Principal{ID: 10, Role: domain.RoleCustomer}
	activities := map[int64]*domain.Activity{
		1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 2),
		2: testActivity(2, testNow.AddDate(0, 0, -3), 10, 2),
	}
	mine := []*domain.Booking{
		{ID: 1, UserID: 10, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming},
		{ID: 2, UserID: 10, ActivityID: 2, TicketsNumber: 1, Status: domain.StatusPast},
		{ID: 3, UserID: 99, ActivityID: 1, TicketsNumber: 1, Status: domain.StatusUpcoming},
	}

	t.Run("returns only own bookings", func(t *testing.T) {
		svc, _ := newTestService(activities, mine...)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Principal: owner})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("status filter applied", func(t *testing.T) {
		svc, _ := newTestService(activities, mine...)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Principal: owner,
			Status:    ptr.Ptr("past"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(2), resp.Bookings[0].ID)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc, _ := newTestService(activities, mine...)

		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Principal: owner,
			Status:    ptr.Ptr("confirmed"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty history", func(t *testing.T) {
		svc, _ := newTestService(activities)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Principal: owner})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
	})
}

func TestGetAllBookings(t *testing.T) {
	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}
	activities := map[int64]*domain.Activity{
		1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 5),
	}
	all := []*domain.Booking{
		{ID: 1, UserID: 10, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming},
		{ID: 2, UserID: 20, ActivityID: 1, TicketsNumber: 3, Status: domain.StatusUpcoming},
	}

	t.Run("admin sees everything", func(t *testing.T) {
		svc, _ := newTestService(activities, all...)

		resp, err := svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{Principal: admin})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("user filter applied", func(t *testing.T) {
		svc, _ := newTestService(activities, all...)

		resp, err := svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{
			Principal: admin,
			UserID:    ptr.Ptr(int64(20)),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(2), resp.Bookings[0].ID)
	})

	t.Run("customer denied", func(t *testing.T) {
		svc, _ := newTestService(activities, all...)

		_, err := svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{
			Principal: domain.Principal{ID: 10, Role: domain.RoleCustomer},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestStats(t *testing.T) {
	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}
	activities := map[int64]*domain.Activity{
		1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 5),                                // upcoming
		2: testActivity(2, time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), 10, 2),           // today
		3: testActivity(3, testNow.AddDate(0, 0, -3), 10, 1),                               // past
	}
	all := []*domain.Booking{
		{ID: 1, UserID: 10, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming},
		{ID: 2, UserID: 20, ActivityID: 2, TicketsNumber: 3, Status: domain.StatusUpcoming}, // сдрейфовал в today
		{ID: 3, UserID: 30, ActivityID: 3, TicketsNumber: 1, Status: domain.StatusPast},
	}

	t.Run("aggregates over fresh statuses", func(t *testing.T) {
		svc, bRepo := newTestService(activities, all...)

		stats, err := svc.Stats(context.Background(), admin)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalBookings)
		assert.Equal(t, 1, stats.UpcomingBookings)
		assert.Equal(t, 1, stats.TodayBookings)
		assert.Equal(t, 1, stats.PastBookings)
		assert.Equal(t, 6, stats.TotalTickets)
		assert.Equal(t, domain.StatusToday, bRepo.statusWrites[2])
	})

	t.Run("customer denied", func(t *testing.T) {
		svc, _ := newTestService(activities, all...)

		_, err := svc.Stats(context.Background(), domain.Principal{ID: 10, Role: domain.RoleCustomer})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCheckAvailability(t *testing.T) {
	customer := domain.Principal{ID: 10, Role: domain.RoleCustomer}

	t.Run("available with spots left", func(t *testing.T) {
		svc, _ := newTestService(map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 7),
		})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 1, TicketsNumber: 2,
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		require.NotNil(t, resp.SpotsLeft)
		assert.Equal(t, 3, *resp.SpotsLeft)
		assert.Equal(t, "3 spots available", resp.Message)
		require.NotNil(t, resp.Activity)
	})

	t.Run("singular spot message", func(t *testing.T) {
		svc, _ := newTestService(map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 9),
		})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Equal(t, "1 spot available", resp.Message)
	})

	t.Run("sold out", func(t *testing.T) {
		svc, _ := newTestService(map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 10),
		})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, "This activity is sold out", resp.Message)
		assert.Nil(t, resp.SpotsLeft)
	})

	t.Run("not enough for requested tickets", func(t *testing.T) {
		svc, _ := newTestService(map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 8),
		})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 1, TicketsNumber: 5,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, "Only 2 spots available", resp.Message)
	})

	t.Run("past activity", func(t *testing.T) {
		svc, _ := newTestService(map[int64]*domain.Activity{
			1: testActivity(1, testNow.Add(-time.Hour), 10, 0),
		})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, "Cannot book past activities", resp.Message)
	})

	t.Run("already booked by this user", func(t *testing.T) {
		activities := map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 2),
		}
		svc, _ := newTestService(activities,
			&domain.Booking{ID: 1, UserID: 10, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, "You have already booked this activity", resp.Message)
	})

	t.Run("admin skips duplicate probe", func(t *testing.T) {
		activities := map[int64]*domain.Activity{
			1: testActivity(1, testNow.AddDate(0, 0, 3), 10, 2),
		}
		svc, _ := newTestService(activities,
			&domain.Booking{ID: 1, UserID: 1, ActivityID: 1, TicketsNumber: 2, Status: domain.StatusUpcoming})

		resp, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: domain.Principal{ID: 1, Role: domain.RoleAdmin}, ActivityID: 1, TicketsNumber: 1,
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})

	t.Run("unknown activity", func(t *testing.T) {
		svc, _ := newTestService(map[int64]*domain.Activity{})

		_, err := svc.CheckAvailability(context.Background(), &models.CheckAvailabilityRequest{
			Principal: customer, ActivityID: 42, TicketsNumber: 1,
		})
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})
}
