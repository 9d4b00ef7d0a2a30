package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FMP-BookingService/internal/service/capacity"
)

// UseCase use case изменения количества билетов бронирования
// Разница между новым и старым количеством проводится через ledger:
// увеличение может быть отклонено по емкости, уменьшение освобождает места
type UseCase struct {
	bookingRepo  BookingRepository
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
	ledger CapacityLedger,
	txManager TransactionManager,
	maxTickets int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		maxTickets:   maxTickets,
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования
// Порядок проверок: существование -> доступ -> дата активности -> билеты -> емкость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: user=%d, booking=%d", req.Principal.ID, req.BookingID)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	newTickets := *req.TicketsNumber

	// 2. Проверки и изменения в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование существует
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		// 2.2. Изменять может только владелец или администратор
		if !req.Principal.CanAccessBooking(booking) {
			return ErrAccessDenied
		}

		// 2.3. Прошедшие активности не изменяются
		if booking.Activity == nil {
			return fmt.Errorf("%w: booking %d has no activity data", ErrInternal, booking.ID)
		}
		if booking.Activity.IsPast(now) {
			return ErrActivityInPast
		}

		// 2.4. Новое количество билетов в допустимых границах
		if err := validateTickets(newTickets, uc.maxTickets); err != nil {
			return err
		}

		delta := newTickets - booking.TicketsNumber
		if delta != 0 {
			// 2.5. Проводим разницу через ledger; увеличение может не поместиться
			// в max_capacity, уменьшение освобождает места
			if _, err := uc.ledger.Reserve(txCtx, booking.ActivityID, delta); err != nil {
				if errors.Is(err, capacity.ErrCapacityExceeded) {
					// Доступно для этого бронирования: свободные места плюс уже занятые им
					return &NotEnoughSpotsError{
						SpotsLeft: booking.Activity.AvailableSpots() + booking.TicketsNumber,
					}
				}
				return fmt.Errorf("%w: adjust capacity: %v", ErrInternal, err)
			}
		}

		// 2.6. Сохраняем новое количество со свежепересчитанным статусом
		status := domain.ClassifyBookingStatus(booking.Activity.DateTime, now)
		if err := uc.bookingRepo.UpdateTickets(txCtx, booking.ID, newTickets, status); err != nil {
			return fmt.Errorf("%w: update booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d (tickets=%d)",
		req.BookingID, newTickets)

	// 3. Читаем обновленное бронирование с денормализованными данными после коммита
	detailed, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to load updated booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: load updated booking: %v", ErrInternal, err)
	}

	return FromDomainBooking(detailed), nil
}
