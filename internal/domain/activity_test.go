package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityCanReserve(t *testing.T) {
	activity := &Activity{MaxCapacity: 5, CurrentCapacity: 3}

	assert.Equal(t, 2, activity.AvailableSpots())
	assert.True(t, activity.CanReserve(2))
	assert.False(t, activity.CanReserve(3))

	full := &Activity{MaxCapacity: 5, CurrentCapacity: 5}
	assert.Equal(t, 0, full.AvailableSpots())
	assert.False(t, full.CanReserve(1))
	// Освобождение (отрицательная дельта) всегда помещается
	assert.True(t, full.CanReserve(-2))
}

func TestActivityIsPast(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	past := &Activity{DateTime: now.Add(-time.Minute)}
	assert.True(t, past.IsPast(now))

	future := &Activity{DateTime: now.Add(time.Minute)}
	assert.False(t, future.IsPast(now))
}
