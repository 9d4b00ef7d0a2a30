package models

import (
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// Request модели

// CreateActivityRequest запрос на создание активности
// max_capacity фиксируется при создании и дальше не редактируется
type CreateActivityRequest struct {
	Principal       domain.Principal
	Title           string
	Description     string
	DateTime        time.Time
	DurationMinutes int
	Price           float64
	MaxCapacity     int
	Category        string
	Location        string
	ImageURL        string
}

// UpdateActivityRequest запрос на частичное обновление активности
// Все поля опциональны; max_capacity и current_capacity не редактируются
type UpdateActivityRequest struct {
	Principal  domain.Principal
	ActivityID int64

	Title           *string
	Description     *string
	DateTime        *time.Time
	DurationMinutes *int
	Price           *float64
	IsActive        *bool
	Category        *string
	Location        *string
	ImageURL        *string
}

// ListActivitiesRequest запрос публичного списка активностей
type ListActivitiesRequest struct {
	UpcomingOnly bool
	Search       *string
}

// Response модели

// UserResponse данные пользователя в составе ответа
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ActivityResponse ответ с данными активности
type ActivityResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"date_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	MaxCapacity     int       `json:"max_capacity"`
	CurrentCapacity int       `json:"current_capacity"`
	AvailableSpots  int       `json:"available_spots"`
	IsActive        bool      `json:"is_active"`
	Category        string    `json:"category,omitempty"`
	Location        string    `json:"location,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	User *UserResponse `json:"user,omitempty"`
}

// ActivityListResponse ответ со списком активностей
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// Методы конвертации

// FromDomainActivity конвертирует domain модель в DTO
func FromDomainActivity(a *domain.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	resp := &ActivityResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		DateTime:        a.DateTime,
		DurationMinutes: a.DurationMinutes,
		Price:           a.Price,
		MaxCapacity:     a.MaxCapacity,
		CurrentCapacity: a.CurrentCapacity,
		AvailableSpots:  a.AvailableSpots(),
		IsActive:        a.IsActive,
		Category:        a.Category,
		Location:        a.Location,
		ImageURL:        a.ImageURL,
		CreatedAt:       a.CreatedAt,
	}
	if a.User != nil {
		resp.User = &UserResponse{
			ID:       a.User.ID,
			Username: a.User.Username,
			Email:    a.User.Email,
			Role:     string(a.User.Role),
		}
	}
	return resp
}

// FromDomainActivityList конвертирует список domain моделей в DTO
func FromDomainActivityList(activities []*domain.Activity) *ActivityListResponse {
	resp := &ActivityListResponse{Activities: make([]ActivityResponse, 0, len(activities))}
	for _, a := range activities {
		resp.Activities = append(resp.Activities, *FromDomainActivity(a))
	}
	return resp
}
