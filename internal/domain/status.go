package domain

import "time"

// ClassifyBookingStatus maps an activity instant and "now" to a booking status.
// Both instants are normalized to UTC and compared by calendar date only:
// an activity starting at 23:59 today is still "today" one minute before it starts.
// Naive instants coming from storage are interpreted as UTC, never as local time.
func ClassifyBookingStatus(activityAt, now time.Time) BookingStatus {
	activityDay := truncateToDay(activityAt.UTC())
	today := truncateToDay(now.UTC())

	switch {
	case activityDay.Before(today):
		return StatusPast
	case activityDay.Equal(today):
		return StatusToday
	default:
		return StatusUpcoming
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
