package domain

import "time"

// Activity represents a scheduled, capacity-limited bookable event
type Activity struct {
	ID              int64
	Title           string
	Description     string
	DateTime        time.Time // Хранится и сравнивается в UTC
	DurationMinutes int
	Price           float64
	MaxCapacity     int // Фиксируется при создании, > 0
	CurrentCapacity int // Меняется только через capacity.Ledger
	IsActive        bool
	Category        string
	Location        string
	ImageURL        string
	UserID          int64 // Администратор, опубликовавший активность
	CreatedAt       time.Time

	User *User
}

// AvailableSpots returns the number of spots still open for booking
func (a *Activity) AvailableSpots() int {
	return a.MaxCapacity - a.CurrentCapacity
}

// CanReserve returns true if reserving tickets would not exceed max capacity
func (a *Activity) CanReserve(tickets int) bool {
	return a.CurrentCapacity+tickets <= a.MaxCapacity
}

// IsPast returns true if the activity instant is strictly before now
// Сравнение по моменту времени, не по календарной дате
func (a *Activity) IsPast(now time.Time) bool {
	return a.DateTime.UTC().Before(now.UTC())
}

// ActivitiesFilter фильтр для публичного списка активностей
type ActivitiesFilter struct {
	UpcomingOnly bool    // Только будущие активности
	Search       *string // Поиск по title/description (опционально)
}
