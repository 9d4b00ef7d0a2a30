package favorites

import (
	"context"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/favorites/models"
)

type FavoritesService interface {
	Add(ctx context.Context, req *models.AddFavoriteRequest) (*models.FavoriteResponse, error)
	List(ctx context.Context, req *models.ListFavoritesRequest) (*models.FavoriteListResponse, error)
	ListIDs(ctx context.Context, principal domain.Principal) (*models.FavoriteIDsResponse, error)
	Remove(ctx context.Context, principal domain.Principal, favoriteID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
