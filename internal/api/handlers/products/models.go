package products

import (
	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/products/models"
)

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    *string `json:"category,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateProductRequest) ToServiceRequest(principal domain.Principal) *models.CreateProductRequest {
	return &models.CreateProductRequest{
		Principal:   principal,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}

// UpdateProductRequest запрос на частичное обновление товара
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateProductRequest) ToServiceRequest(principal domain.Principal, productID int64) *models.UpdateProductRequest {
	return &models.UpdateProductRequest{
		Principal:   principal,
		ProductID:   productID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}
