package domain

// Business validation constants
const (
	MinTicketsPerBooking = 1

	MaxTitleLength       = 200
	MaxDescriptionLength = 255
	MaxProductNameLength = 100
	MaxCategoryLength    = 50
	MaxLocationLength    = 200

	DefaultDurationMinutes = 60
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
