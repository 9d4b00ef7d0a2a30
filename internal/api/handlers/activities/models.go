package activities

import (
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/activities/models"
)

// CreateActivityRequest запрос на создание активности
type CreateActivityRequest struct {
	Title           string    `json:"title" validate:"required,min=1,max=200"`
	Description     string    `json:"description,omitempty"`
	DateTime        time.Time `json:"date_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	MaxCapacity     int       `json:"max_capacity" validate:"required,gt=0"`
	Category        string    `json:"category,omitempty"`
	Location        string    `json:"location,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateActivityRequest) ToServiceRequest(principal domain.Principal) *models.CreateActivityRequest {
	return &models.CreateActivityRequest{
		Principal:       principal,
		Title:           r.Title,
		Description:     r.Description,
		DateTime:        r.DateTime,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		MaxCapacity:     r.MaxCapacity,
		Category:        r.Category,
		Location:        r.Location,
		ImageURL:        r.ImageURL,
	}
}

// UpdateActivityRequest запрос на частичное обновление активности
// Вместимость после создания не редактируется
type UpdateActivityRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description,omitempty"`
	DateTime        *time.Time `json:"date_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Price           *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsActive        *bool      `json:"is_active,omitempty"`
	Category        *string    `json:"category,omitempty"`
	Location        *string    `json:"location,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateActivityRequest) ToServiceRequest(principal domain.Principal, activityID int64) *models.UpdateActivityRequest {
	return &models.UpdateActivityRequest{
		Principal:       principal,
		ActivityID:      activityID,
		Title:           r.Title,
		Description:     r.Description,
		DateTime:        r.DateTime,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		IsActive:        r.IsActive,
		Category:        r.Category,
		Location:        r.Location,
		ImageURL:        r.ImageURL,
	}
}
