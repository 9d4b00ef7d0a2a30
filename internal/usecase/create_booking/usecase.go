package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FMP-BookingService/internal/service/capacity"
)

// UseCase use case создания бронирования
// Все проверки и изменения выполняются в одной сериализуемой транзакции:
// конкурирующие запросы на последние места одной активности сериализуются,
// проигравший видит свежий current_capacity и получает отказ
type UseCase struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	ledger       CapacityLedger
	txManager    TransactionManager
	timeProvider TimeProvider
	maxTickets   int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// maxTickets - политика верхней границы билетов на бронирование (0 - без ограничения)
func NewUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	ledger CapacityLedger,
	txManager TransactionManager,
	maxTickets int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		ledger:       ledger,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		maxTickets:   maxTickets,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Порядок проверок фиксирован, первая неудача побеждает:
// роль -> существование и активность -> дата -> билеты -> емкость -> дубликат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, activity=%d, tickets=%d",
		req.Principal.ID, req.ActivityID, req.TicketsNumber)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Администраторы не бронируют активности
	if req.Principal.IsAdmin() {
		uc.logger.Warn("CreateBooking: admin user=%d attempted to book activity=%d",
			req.Principal.ID, req.ActivityID)
		return nil, ErrAdminCannotBook
	}

	now := uc.timeProvider.Now()

	var created *domain.Booking

	// 3. Проверки и изменения в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Активность существует и активна (строка заблокирована до конца транзакции)
		activity, err := uc.activityRepo.GetByIDForUpdate(txCtx, req.ActivityID)
		if err != nil {
			if errors.Is(err, activityRepo.ErrActivityNotFound) {
				return ErrActivityNotFound
			}
			return fmt.Errorf("%w: get activity: %v", ErrInternal, err)
		}
		if !activity.IsActive {
			return ErrActivityNotFound
		}

		// 3.2. Активность еще не началась
		if activity.IsPast(now) {
			return ErrActivityInPast
		}

		// 3.3. Количество билетов в допустимых границах
		if err := validateTickets(req.TicketsNumber, uc.maxTickets); err != nil {
			return err
		}

		// 3.4. Резервируем места; ledger откажет, если превышен max_capacity
		reserved, err := uc.ledger.Reserve(txCtx, req.ActivityID, req.TicketsNumber)
		if err != nil {
			if errors.Is(err, capacity.ErrCapacityExceeded) {
				return &NotEnoughSpotsError{SpotsLeft: activity.AvailableSpots()}
			}
			return fmt.Errorf("%w: reserve capacity: %v", ErrInternal, err)
		}

		// 3.5. У пользователя нет другого бронирования этой активности
		// (нужно изменять существующее, а не создавать второе)
		_, err = uc.bookingRepo.GetByUserAndActivity(txCtx, req.Principal.ID, req.ActivityID)
		if err == nil {
			return ErrAlreadyBooked
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: check duplicate booking: %v", ErrInternal, err)
		}

		// 3.6. Создаем бронирование со статусом, вычисленным классификатором
		booking := &domain.Booking{
			UserID:        req.Principal.ID,
			ActivityID:    req.ActivityID,
			TicketsNumber: req.TicketsNumber,
			Status:        domain.ClassifyBookingStatus(reserved.DateTime, now),
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальный индекс (user_id, activity_id) - вторая линия защиты от дубликатов
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				return ErrAlreadyBooked
			}
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (user=%d, activity=%d, tickets=%d)",
		created.ID, req.Principal.ID, req.ActivityID, req.TicketsNumber)

	// 4. Читаем созданное бронирование с денормализованными данными после коммита
	detailed, err := uc.bookingRepo.GetByID(ctx, created.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load created booking id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: load created booking: %v", ErrInternal, err)
	}

	return FromDomainBooking(detailed), nil
}
