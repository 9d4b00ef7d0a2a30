package models

import (
	"time"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// Request модели

// AddFavoriteRequest запрос на добавление в избранное
type AddFavoriteRequest struct {
	Principal domain.Principal
	ItemID    int64
	ItemType  string // "product" или "activity"
}

// ListFavoritesRequest запрос списка избранного
type ListFavoritesRequest struct {
	Principal domain.Principal
	ItemType  *string // Фильтр по типу (опционально)
}

// Response модели

// ProductItem данные товара в составе избранного
type ProductItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    *string `json:"category,omitempty"`
}

// ActivityItem данные активности в составе избранного
type ActivityItem struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"date_time"`
	Price           float64   `json:"price"`
	MaxCapacity     int       `json:"max_capacity"`
	CurrentCapacity int       `json:"current_capacity"`
}

// FavoriteResponse ответ с записью избранного
// Ровно одно из полей Product/Activity заполнено по ItemType
type FavoriteResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	ItemID   int64  `json:"item_id"`
	ItemType string `json:"item_type"`

	Product  *ProductItem  `json:"product,omitempty"`
	Activity *ActivityItem `json:"activity,omitempty"`
}

// FavoriteListResponse ответ со списком избранного
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// FavoriteIDsResponse облегченный ответ с ID избранных элементов по типам
type FavoriteIDsResponse struct {
	Products   []int64 `json:"products"`
	Activities []int64 `json:"activities"`
}

// Методы конвертации

// FromDomainFavorite конвертирует domain модель в DTO
func FromDomainFavorite(f *domain.Favorite) *FavoriteResponse {
	if f == nil {
		return nil
	}
	resp := &FavoriteResponse{
		ID:       f.ID,
		UserID:   f.UserID,
		ItemID:   f.ItemID,
		ItemType: string(f.ItemType),
	}
	if f.Product != nil {
		resp.Product = &ProductItem{
			ID:          f.Product.ID,
			Name:        f.Product.Name,
			Description: f.Product.Description,
			Price:       f.Product.Price,
			Category:    f.Product.Category,
		}
	}
	if f.Activity != nil {
		resp.Activity = &ActivityItem{
			ID:              f.Activity.ID,
			Title:           f.Activity.Title,
			Description:     f.Activity.Description,
			DateTime:        f.Activity.DateTime,
			Price:           f.Activity.Price,
			MaxCapacity:     f.Activity.MaxCapacity,
			CurrentCapacity: f.Activity.CurrentCapacity,
		}
	}
	return resp
}
