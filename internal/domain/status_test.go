package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBookingStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		activityAt time.Time
		want       BookingStatus
	}{
		{
			name:       "yesterday is past",
			activityAt: time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC),
			want:       StatusPast,
		},
		{
			name:       "earlier today is today, not past",
			activityAt: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
			want:       StatusToday,
		},
		{
			name:       "tonight one minute before midnight is today",
			activityAt: time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			want:       StatusToday,
		},
		{
			name:       "tomorrow just after midnight is upcoming",
			activityAt: time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC),
			want:       StatusUpcoming,
		},
		{
			name:       "next month is upcoming",
			activityAt: time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC),
			want:       StatusUpcoming,
		},
		{
			name:       "same calendar day in another zone still compared in UTC",
			activityAt: time.Date(2025, 6, 16, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)), // 22:00 UTC 15-го
			want:       StatusToday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBookingStatus(tt.activityAt, now))
		})
	}
}

func TestClassifyBookingStatus_TimeOfDayIndependent(t *testing.T) {
	activityAt := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	// Любое "сейчас" в пределах одного календарного дня дает один и тот же статус
	for hour := 0; hour < 24; hour++ {
		now := time.Date(2025, 6, 15, hour, 0, 0, 0, time.UTC)
		assert.Equal(t, StatusToday, ClassifyBookingStatus(activityAt, now), "hour=%d", hour)
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"past", "today", "upcoming"} {
		status, err := ParseBookingStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, BookingStatus(valid), status)
	}

	_, err := ParseBookingStatus("cancelled")
	assert.Error(t, err)
}

func TestBookingRefreshStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	booking := &Booking{
		Status:   StatusUpcoming,
		Activity: &Activity{DateTime: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}

	changed := booking.RefreshStatus(now)
	assert.True(t, changed)
	assert.Equal(t, StatusPast, booking.Status)

	// Повторный пересчет ничего не меняет
	assert.False(t, booking.RefreshStatus(now))
	assert.Equal(t, StatusPast, booking.Status)
}
