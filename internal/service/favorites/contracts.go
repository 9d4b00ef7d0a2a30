package favorites

import (
	"context"

	"github.com/m04kA/FMP-BookingService/internal/domain"
)

// FavoriteRepository интерфейс репозитория избранного
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error)
	GetByID(ctx context.Context, id int64) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Favorite, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
