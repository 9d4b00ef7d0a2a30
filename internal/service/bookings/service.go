package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FMP-BookingService/internal/service/bookings/models"
)

// Service read-сторона бронирований: выборки, статистика, проверка доступности.
// Перед каждой выдачей статусы пересчитываются классификатором:
// кэшированное значение в БД дрейфует по мере наступления даты активности
type Service struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, activityRepo ActivityRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и администратору
func (s *Service) GetByID(ctx context.Context, principal domain.Principal, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !principal.CanAccessBooking(booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.ID, id)
		return nil, ErrAccessDenied
	}

	s.refreshStatuses(ctx, booking)

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу; сортировка от новых к старым
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.Principal.ID)

	filter := domain.BookingsFilter{UserID: &req.Principal.ID}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.Principal.ID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.Principal.ID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.refreshStatuses(ctx, bookings...)
	bookings = filterByStatus(bookings, filter.Status)

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.Principal.ID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAllBookings получает все бронирования с фильтрацией
// Доступно только администратору
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: fetching bookings for admin=%d", req.Principal.ID)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("GetAllBookings: access denied for user=%d", req.Principal.ID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAllBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.refreshStatuses(ctx, bookings...)
	bookings = filterByStatus(bookings, filter.Status)

	s.logger.Info("GetAllBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Stats возвращает агрегированную статистику по всем бронированиям
// Доступно только администратору
func (s *Service) Stats(ctx context.Context, principal domain.Principal) (*models.StatsResponse, error) {
	s.logger.Info("Stats: fetching booking stats for admin=%d", principal.ID)

	if !principal.IsAdmin() {
		s.logger.Warn("Stats: access denied for user=%d", principal.ID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{})
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	// Агрегируем по свежим статусам
	s.refreshStatuses(ctx, bookings...)

	stats := &models.StatsResponse{TotalBookings: len(bookings)}
	for _, b := range bookings {
		stats.TotalTickets += b.TicketsNumber
		switch b.Status {
		case domain.StatusUpcoming:
			stats.UpcomingBookings++
		case domain.StatusToday:
			stats.TodayBookings++
		case domain.StatusPast:
			stats.PastBookings++
		}
	}

	return stats, nil
}

// CheckAvailability проверяет, возможно ли бронирование активности,
// не создавая его - для валидации на стороне клиента перед попыткой
func (s *Service) CheckAvailability(ctx context.Context, req *models.CheckAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: activity=%d, tickets=%d, user=%d",
		req.ActivityID, req.TicketsNumber, req.Principal.ID)

	if req.TicketsNumber < domain.MinTicketsPerBooking {
		return nil, fmt.Errorf("%w: tickets number must be at least %d", ErrInvalidInput, domain.MinTicketsPerBooking)
	}

	activity, err := s.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("CheckAvailability: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("CheckAvailability: repository error for activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}

	if activity.IsPast(s.timeProvider.Now()) {
		return &models.AvailabilityResponse{
			Available: false,
			Message:   "Cannot book past activities",
		}, nil
	}

	spotsLeft := activity.AvailableSpots()
	if spotsLeft <= 0 {
		return &models.AvailabilityResponse{
			Available: false,
			Message:   "This activity is sold out",
		}, nil
	}
	if req.TicketsNumber > spotsLeft {
		return &models.AvailabilityResponse{
			Available: false,
			Message:   fmt.Sprintf("Only %s available", spotsWord(spotsLeft)),
		}, nil
	}

	// У обычного пользователя не может быть второго бронирования этой активности
	if !req.Principal.IsAdmin() {
		_, err := s.bookingRepo.GetByUserAndActivity(ctx, req.Principal.ID, req.ActivityID)
		if err == nil {
			return &models.AvailabilityResponse{
				Available: false,
				Message:   "You have already booked this activity",
			}, nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Error("CheckAvailability: duplicate probe failed for user=%d: %v", req.Principal.ID, err)
			return nil, fmt.Errorf("%w: CheckAvailability - duplicate probe: %v", ErrInternal, err)
		}
	}

	return &models.AvailabilityResponse{
		Available: true,
		SpotsLeft: &spotsLeft,
		Message:   fmt.Sprintf("%s available", spotsWord(spotsLeft)),
		Activity:  models.FromDomainActivity(activity),
	}, nil
}

// refreshStatuses пересчитывает статусы и сохраняет те, что сдрейфовали.
// Ошибка записи не фатальна для чтения: отдаем свежий статус,
// кэш в БД догонит на следующем запросе
func (s *Service) refreshStatuses(ctx context.Context, bookings ...*domain.Booking) {
	now := s.timeProvider.Now()
	for _, b := range bookings {
		if !b.RefreshStatus(now) {
			continue
		}
		if err := s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status); err != nil {
			s.logger.Warn("refreshStatuses: failed to persist status for booking id=%d: %v", b.ID, err)
		}
	}
}

// filterByStatus повторно применяет фильтр по статусу после пересчета:
// строка могла сдрейфовать из запрошенного статуса между записью и чтением
func filterByStatus(bookings []*domain.Booking, status *domain.BookingStatus) []*domain.Booking {
	if status == nil {
		return bookings
	}
	filtered := bookings[:0]
	for _, b := range bookings {
		if b.Status == *status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// spotsWord форматирует количество мест с правильным числом
func spotsWord(n int) string {
	if n == 1 {
		return "1 spot"
	}
	return fmt.Sprintf("%d spots", n)
}
