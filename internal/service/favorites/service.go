package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	favoriteRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/favorite"
	productRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/product"
	"github.com/m04kA/FMP-BookingService/internal/service/favorites/models"
)

// Service избранное пользователя: закладки на товары и активности.
// Записи полиморфны (item_id + item_type), при выдаче гидрируются
// данными элемента; закладки на снятые с публикации элементы не выдаются
type Service struct {
	favoriteRepo FavoriteRepository
	productRepo  ProductRepository
	activityRepo ActivityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса избранного
func NewService(
	favoriteRepo FavoriteRepository,
	productRepo ProductRepository,
	activityRepo ActivityRepository,
	logger Logger,
) *Service {
	return &Service{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Add добавляет товар или активность в избранное
// Элемент должен существовать и быть активным; повторное добавление - конфликт
func (s *Service) Add(ctx context.Context, req *models.AddFavoriteRequest) (*models.FavoriteResponse, error) {
	s.logger.Info("Add: user=%d favoriting %s id=%d", req.Principal.ID, req.ItemType, req.ItemID)

	itemType, err := domain.ParseFavoriteType(req.ItemType)
	if err != nil {
		s.logger.Warn("Add: invalid item type %q", req.ItemType)
		return nil, fmt.Errorf("%w: item_type must be either 'product' or 'activity'", ErrInvalidInput)
	}
	if req.ItemID <= 0 {
		return nil, fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	favorite := &domain.Favorite{
		UserID:   req.Principal.ID,
		ItemID:   req.ItemID,
		ItemType: itemType,
	}

	if err := s.hydrate(ctx, favorite); err != nil {
		return nil, err
	}

	created, err := s.favoriteRepo.Create(ctx, favorite)
	if err != nil {
		if errors.Is(err, favoriteRepo.ErrDuplicateFavorite) {
			s.logger.Warn("Add: user=%d already favorited %s id=%d", req.Principal.ID, req.ItemType, req.ItemID)
			return nil, ErrAlreadyFavorited
		}
		s.logger.Error("Add: repository error: %v", err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: successfully created favorite id=%d", created.ID)
	return models.FromDomainFavorite(created), nil
}

// List возвращает избранное пользователя, гидрированное данными элементов
// Опционально фильтрует по типу; закладки на неактивные элементы опускаются
func (s *Service) List(ctx context.Context, req *models.ListFavoritesRequest) (*models.FavoriteListResponse, error) {
	s.logger.Info("List: fetching favorites for user=%d", req.Principal.ID)

	var typeFilter *domain.FavoriteType
	if req.ItemType != nil {
		parsed, err := domain.ParseFavoriteType(*req.ItemType)
		if err != nil {
			return nil, fmt.Errorf("%w: item_type must be either 'product' or 'activity'", ErrInvalidInput)
		}
		typeFilter = &parsed
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, req.Principal.ID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Principal.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.FavoriteListResponse{Favorites: make([]models.FavoriteResponse, 0, len(favorites))}
	for _, f := range favorites {
		if typeFilter != nil && f.ItemType != *typeFilter {
			continue
		}
		if err := s.hydrate(ctx, f); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				continue
			}
			return nil, err
		}
		resp.Favorites = append(resp.Favorites, *models.FromDomainFavorite(f))
	}

	s.logger.Info("List: successfully fetched %d favorites for user=%d", len(resp.Favorites), req.Principal.ID)
	return resp, nil
}

// ListIDs возвращает только ID избранных элементов по типам
// Облегченный вариант для проставления флажков на витрине
func (s *Service) ListIDs(ctx context.Context, principal domain.Principal) (*models.FavoriteIDsResponse, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, principal.ID)
	if err != nil {
		s.logger.Error("ListIDs: repository error for user=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: ListIDs - repository error: %v", ErrInternal, err)
	}

	resp := &models.FavoriteIDsResponse{Products: []int64{}, Activities: []int64{}}
	for _, f := range favorites {
		switch f.ItemType {
		case domain.FavoriteProduct:
			resp.Products = append(resp.Products, f.ItemID)
		case domain.FavoriteActivity:
			resp.Activities = append(resp.Activities, f.ItemID)
		}
	}
	return resp, nil
}

// Remove удаляет запись избранного
// Удалять можно только собственные записи
func (s *Service) Remove(ctx context.Context, principal domain.Principal, favoriteID int64) error {
	s.logger.Info("Remove: user=%d removing favorite id=%d", principal.ID, favoriteID)

	favorite, err := s.favoriteRepo.GetByID(ctx, favoriteID)
	if err != nil {
		if errors.Is(err, favoriteRepo.ErrFavoriteNotFound) {
			s.logger.Warn("Remove: favorite id=%d not found", favoriteID)
			return ErrFavoriteNotFound
		}
		s.logger.Error("Remove: repository error for favorite id=%d: %v", favoriteID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	if favorite.UserID != principal.ID {
		s.logger.Warn("Remove: access denied for user=%d to favorite id=%d", principal.ID, favoriteID)
		return ErrAccessDenied
	}

	if err := s.favoriteRepo.Delete(ctx, favoriteID); err != nil {
		if errors.Is(err, favoriteRepo.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		s.logger.Error("Remove: repository error for favorite id=%d: %v", favoriteID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: successfully removed favorite id=%d", favoriteID)
	return nil
}

// hydrate подтягивает данные элемента; неактивный или отсутствующий
// элемент дает ErrItemNotFound
func (s *Service) hydrate(ctx context.Context, f *domain.Favorite) error {
	switch f.ItemType {
	case domain.FavoriteProduct:
		product, err := s.productRepo.GetByID(ctx, f.ItemID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("%w: hydrate - get product id=%d: %v", ErrInternal, f.ItemID, err)
		}
		if !product.IsActive {
			return ErrItemNotFound
		}
		f.Product = product
	case domain.FavoriteActivity:
		activity, err := s.activityRepo.GetByID(ctx, f.ItemID)
		if err != nil {
			if errors.Is(err, activityRepo.ErrActivityNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("%w: hydrate - get activity id=%d: %v", ErrInternal, f.ItemID, err)
		}
		if !activity.IsActive {
			return ErrItemNotFound
		}
		f.Activity = activity
	default:
		return fmt.Errorf("%w: unknown item type %q", ErrInternal, f.ItemType)
	}
	return nil
}
