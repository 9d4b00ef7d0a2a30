package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking relative to the activity date
type BookingStatus string

const (
	StatusPast     BookingStatus = "past"
	StatusToday    BookingStatus = "today"
	StatusUpcoming BookingStatus = "upcoming"
)

// ParseBookingStatus validates and converts a raw status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPast, StatusToday, StatusUpcoming:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// Booking represents one customer's reservation against one activity
// Одна пара (user_id, activity_id) может иметь не более одного бронирования
type Booking struct {
	ID            int64
	UserID        int64
	ActivityID    int64
	TicketsNumber int
	Status        BookingStatus
	BookedAt      time.Time

	// Denormalized data for response composition (joined reads)
	User     *User
	Activity *Activity
}

// RefreshStatus recomputes the status from the activity date and reports
// whether the cached value drifted
func (b *Booking) RefreshStatus(now time.Time) bool {
	if b.Activity == nil {
		return false
	}
	fresh := ClassifyBookingStatus(b.Activity.DateTime, now)
	if fresh == b.Status {
		return false
	}
	b.Status = fresh
	return true
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID     *int64         // Фильтр по пользователю (опционально)
	ActivityID *int64         // Фильтр по активности (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
}

// BookingStats агрегированная статистика по бронированиям
type BookingStats struct {
	TotalBookings    int
	UpcomingBookings int
	TodayBookings    int
	PastBookings     int
	TotalTickets     int
}
