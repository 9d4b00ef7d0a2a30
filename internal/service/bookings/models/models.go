package models

import (
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос истории бронирований пользователя
type GetUserBookingsRequest struct {
	Principal domain.Principal
	Status    *string // Фильтр по статусу (опционально)
}

// GetAllBookingsRequest запрос всех бронирований (только для администратора)
type GetAllBookingsRequest struct {
	Principal  domain.Principal
	UserID     *int64  // Фильтр по пользователю (опционально)
	ActivityID *int64  // Фильтр по активности (опционально)
	Status     *string // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAllBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:     r.UserID,
		ActivityID: r.ActivityID,
	}
	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// CheckAvailabilityRequest запрос проверки доступности активности
type CheckAvailabilityRequest struct {
	Principal     domain.Principal
	ActivityID    int64
	TicketsNumber int // Желаемое количество билетов (>= 1)
}

// Response модели

// UserResponse данные пользователя в составе ответа
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ActivityResponse данные активности в составе ответа
type ActivityResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"date_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	MaxCapacity     int       `json:"max_capacity"`
	CurrentCapacity int       `json:"current_capacity"`
	IsActive        bool      `json:"is_active"`
	Category        string    `json:"category,omitempty"`
	Location        string    `json:"location,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ActivityID    int64     `json:"activity_id"`
	TicketsNumber int       `json:"tickets_number"`
	Status        string    `json:"status"`
	BookedAt      time.Time `json:"booked_at"`

	// Денормализованные данные
	User     *UserResponse     `json:"user,omitempty"`
	Activity *ActivityResponse `json:"activity,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse агрегированная статистика по бронированиям
type StatsResponse struct {
	TotalBookings    int `json:"total_bookings"`
	UpcomingBookings int `json:"upcoming_bookings"`
	TodayBookings    int `json:"today_bookings"`
	PastBookings     int `json:"past_bookings"`
	TotalTickets     int `json:"total_tickets"`
}

// AvailabilityResponse ответ проверки доступности
// SpotsLeft присутствует только при Available = true
type AvailabilityResponse struct {
	Available bool              `json:"available"`
	SpotsLeft *int              `json:"spots_left,omitempty"`
	Message   string            `json:"message"`
	Activity  *ActivityResponse `json:"activity,omitempty"`
}

// Методы конвертации

// FromDomainUser конвертирует domain модель пользователя в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

// FromDomainActivity конвертирует domain модель активности в DTO
func FromDomainActivity(a *domain.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		DateTime:        a.DateTime,
		DurationMinutes: a.DurationMinutes,
		Price:           a.Price,
		MaxCapacity:     a.MaxCapacity,
		CurrentCapacity: a.CurrentCapacity,
		IsActive:        a.IsActive,
		Category:        a.Category,
		Location:        a.Location,
		ImageURL:        a.ImageURL,
		CreatedAt:       a.CreatedAt,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ActivityID:    b.ActivityID,
		TicketsNumber: b.TicketsNumber,
		Status:        string(b.Status),
		BookedAt:      b.BookedAt,
		User:          FromDomainUser(b.User),
		Activity:      FromDomainActivity(b.Activity),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
