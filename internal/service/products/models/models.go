package models

import (
	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// Request модели

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	Principal   domain.Principal
	Name        string
	Description *string
	Price       float64
	Category    *string
}

// UpdateProductRequest запрос на частичное обновление товара
type UpdateProductRequest struct {
	Principal domain.Principal
	ProductID int64

	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

// ListProductsRequest запрос публичного списка товаров
type ListProductsRequest struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
	Search   *string
	Limit    int
	Offset   int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListProductsRequest) ToDomainFilter() domain.ProductsFilter {
	return domain.ProductsFilter{
		Category: r.Category,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		Search:   r.Search,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// Response модели

// ProductResponse ответ с данными товара
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    *string `json:"category,omitempty"`
	IsActive    bool    `json:"is_active"`
	UserID      int64   `json:"user_id"`
}

// ProductListResponse ответ со списком товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// Методы конвертации

// FromDomainProduct конвертирует domain модель в DTO
func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		IsActive:    p.IsActive,
		UserID:      p.UserID,
	}
}

// FromDomainProductList конвертирует список domain моделей в DTO
func FromDomainProductList(products []*domain.Product) *ProductListResponse {
	resp := &ProductListResponse{Products: make([]ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, *FromDomainProduct(p))
	}
	return resp
}
