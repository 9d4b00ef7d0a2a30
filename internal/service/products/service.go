package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	productRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/product"
	"github.com/m04kA/FMP-BookingService/internal/service/products/models"
)

// DefaultListLimit лимит выдачи по умолчанию; MaxListLimit верхняя граница
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service каталог товаров: публичное чтение, административные изменения.
// Удаление мягкое - товар снимается с публикации и может быть восстановлен
type Service struct {
	productRepo ProductRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса товаров
func NewService(productRepo ProductRepository, logger Logger) *Service {
	return &Service{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create создает новый товар
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Create: creating product %q by user=%d", req.Name, req.Principal.ID)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("Create: access denied for user=%d", req.Principal.ID)
		return nil, ErrAccessDenied
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    true,
		UserID:      req.Principal.ID,
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created product id=%d", created.ID)
	return models.FromDomainProduct(created), nil
}

// GetByID получает товар по ID (публично)
// Снятые с публикации товары не видны
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProductResponse, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		s.logger.Warn("GetByID: product id=%d is inactive", id)
		return nil, ErrProductNotFound
	}
	return models.FromDomainProduct(product), nil
}

// List получает публичный список активных товаров
// с фильтрацией, поиском и пагинацией; новые первыми
func (s *Service) List(ctx context.Context, req *models.ListProductsRequest) (*models.ProductListResponse, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultListLimit
	}
	if req.Limit > MaxListLimit {
		req.Limit = MaxListLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	products, err := s.productRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d products", len(products))
	return models.FromDomainProductList(products), nil
}

// Update частично обновляет товар
// Доступно только администратору
func (s *Service) Update(ctx context.Context, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Update: updating product id=%d by user=%d", req.ProductID, req.Principal.ID)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("Update: access denied for user=%d", req.Principal.ID)
		return nil, ErrAccessDenied
	}

	product, err := s.getProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = req.Category
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Update: repository error for product id=%d: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated product id=%d", req.ProductID)
	return models.FromDomainProduct(product), nil
}

// Delete снимает товар с публикации (мягкое удаление)
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	s.logger.Info("Delete: deleting product id=%d by user=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("Delete: access denied for user=%d", principal.ID)
		return ErrAccessDenied
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return err
	}

	product.IsActive = false
	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Delete: repository error for product id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted product id=%d", id)
	return nil
}

// Restore возвращает мягко удаленный товар в публикацию
// Доступно только администратору
func (s *Service) Restore(ctx context.Context, principal domain.Principal, id int64) (*models.ProductResponse, error) {
	s.logger.Info("Restore: restoring product id=%d by user=%d", id, principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("Restore: access denied for user=%d", principal.ID)
		return nil, ErrAccessDenied
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsActive = true
	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Restore: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Restore - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProduct(product), nil
}

// getProduct загружает товар, транслируя ошибку репозитория
func (s *Service) getProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("getProduct: product id=%d not found", id)
			return nil, ErrProductNotFound
		}
		s.logger.Error("getProduct: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getProduct - repository error: %v", ErrInternal, err)
	}
	return product, nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if len(trimmed) > domain.MaxProductNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxProductNameLength)
	}
	return nil
}
