package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	"github.com/m04kA/FMP-BookingService/internal/service/activities/models"
)

// Service каталог активностей: публичное чтение, административные изменения.
// current_capacity сюда не пишется - только через capacity.Ledger
type Service struct {
	activityRepo ActivityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса активностей
func NewService(activityRepo ActivityRepository, logger Logger) *Service {
	return &Service{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create создает новую активность
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateActivityRequest) (*models.ActivityResponse, error) {
	s.logger.Info("Create: creating activity %q by user=%d", req.Title, req.Principal.ID)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("Create: access denied for user=%d", req.Principal.ID)
		return nil, ErrAccessDenied
	}
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	activity := &domain.Activity{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DateTime:        req.DateTime.UTC(),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		MaxCapacity:     req.MaxCapacity,
		IsActive:        true,
		Category:        req.Category,
		Location:        req.Location,
		ImageURL:        req.ImageURL,
		UserID:          req.Principal.ID,
	}
	if activity.DurationMinutes == 0 {
		activity.DurationMinutes = domain.DefaultDurationMinutes
	}

	created, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created activity id=%d", created.ID)
	return models.FromDomainActivity(created), nil
}

// GetByID получает активность по ID (публично)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ActivityResponse, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("GetByID: activity id=%d not found", id)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("GetByID: repository error for activity id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainActivity(activity), nil
}

// List получает публичный список активных активностей
// По умолчанию только будущие; опционально поиск по title/description
func (s *Service) List(ctx context.Context, req *models.ListActivitiesRequest) (*models.ActivityListResponse, error) {
	filter := domain.ActivitiesFilter{
		UpcomingOnly: req.UpcomingOnly,
		Search:       req.Search,
	}

	activities, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d activities", len(activities))
	return models.FromDomainActivityList(activities), nil
}

// Update частично обновляет каталожные поля активности
// Доступно только администратору; max_capacity не редактируется
func (s *Service) Update(ctx context.Context, req *models.UpdateActivityRequest) (*models.ActivityResponse, error) {
	s.logger.Info("Update: updating activity id=%d by user=%d", req.ActivityID, req.Principal.ID)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("Update: access denied for user=%d", req.Principal.ID)
		return nil, ErrAccessDenied
	}

	activity, err := s.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("Update: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("Update: repository error for activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyUpdate(activity, req)
	if err := validateActivity(activity); err != nil {
		s.logger.Warn("Update: validation failed for activity id=%d: %v", req.ActivityID, err)
		return nil, err
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("Update: repository error for activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated activity id=%d", req.ActivityID)
	return s.GetByID(ctx, req.ActivityID)
}

// Deactivate снимает активность с публикации (мягкое удаление)
// Бронирования и емкость остаются нетронутыми
func (s *Service) Deactivate(ctx context.Context, principal domain.Principal, id int64) error {
	s.logger.Info("Deactivate: deactivating activity id=%d by user=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("Deactivate: access denied for user=%d", principal.ID)
		return ErrAccessDenied
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	activity.IsActive = false
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		s.logger.Error("Deactivate: repository error for activity id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated activity id=%d", id)
	return nil
}

// Delete безвозвратно удаляет активность
// Бронирования удаляются каскадно на уровне схемы; операция необратима
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	s.logger.Info("Delete: deleting activity id=%d by user=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("Delete: access denied for user=%d", principal.ID)
		return ErrAccessDenied
	}

	if err := s.activityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return ErrActivityNotFound
		}
		s.logger.Error("Delete: repository error for activity id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted activity id=%d", id)
	return nil
}

// ToggleActive переключает флаг публикации активности
// Удобно для открытия/закрытия записи; доступно только администратору
func (s *Service) ToggleActive(ctx context.Context, principal domain.Principal, id int64) (*models.ActivityResponse, error) {
	s.logger.Info("ToggleActive: toggling activity id=%d by user=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("ToggleActive: access denied for user=%d", principal.ID)
		return nil, ErrAccessDenied
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("%w: ToggleActive - repository error: %v", ErrInternal, err)
	}

	activity.IsActive = !activity.IsActive
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		s.logger.Error("ToggleActive: repository error for activity id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ToggleActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainActivity(activity), nil
}

// Вспомогательные функции

func validateCreate(req *models.CreateActivityRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if req.MaxCapacity <= 0 {
		return fmt.Errorf("%w: max capacity must be positive", ErrInvalidInput)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

func validateActivity(a *domain.Activity) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if len(a.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if len(a.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if a.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if a.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

// applyUpdate применяет только переданные поля
func applyUpdate(a *domain.Activity, req *models.UpdateActivityRequest) {
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.DateTime != nil {
		a.DateTime = req.DateTime.UTC()
	}
	if req.DurationMinutes != nil {
		a.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		a.Price = *req.Price
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.Location != nil {
		a.Location = *req.Location
	}
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
}
