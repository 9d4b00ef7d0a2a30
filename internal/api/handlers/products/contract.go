package products

import (
	"context"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/products/models"
)

type ProductsService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ProductResponse, error)
	List(ctx context.Context, req *models.ListProductsRequest) (*models.ProductListResponse, error)
	Update(ctx context.Context, req *models.UpdateProductRequest) (*models.ProductResponse, error)
	Delete(ctx context.Context, principal domain.Principal, id int64) error
	Restore(ctx context.Context, principal domain.Principal, id int64) (*models.ProductResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
