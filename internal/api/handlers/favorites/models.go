package favorites

import (
	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/favorites/models"
)

// AddFavoriteRequest запрос на добавление элемента в избранное
type AddFavoriteRequest struct {
	ItemID   int64  `json:"item_id" validate:"required,gt=0"`
	ItemType string `json:"item_type" validate:"required,oneof=product activity"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddFavoriteRequest) ToServiceRequest(principal domain.Principal) *models.AddFavoriteRequest {
	return &models.AddFavoriteRequest{
		Principal: principal,
		ItemID:    r.ItemID,
		ItemType:  r.ItemType,
	}
}
