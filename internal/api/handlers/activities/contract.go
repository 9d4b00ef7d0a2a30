package activities

import (
	"context"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/internal/service/activities/models"
)

type ActivitiesService interface {
	Create(ctx context.Context, req *models.CreateActivityRequest) (*models.ActivityResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ActivityResponse, error)
	List(ctx context.Context, req *models.ListActivitiesRequest) (*models.ActivityListResponse, error)
	Update(ctx context.Context, req *models.UpdateActivityRequest) (*models.ActivityResponse, error)
	Deactivate(ctx context.Context, principal domain.Principal, id int64) error
	Delete(ctx context.Context, principal domain.Principal, id int64) error
	ToggleActive(ctx context.Context, principal domain.Principal, id int64) (*models.ActivityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
