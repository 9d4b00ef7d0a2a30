package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования
// Удаление строки и освобождение мест выполняются в одной сериализуемой транзакции:
// после коммита ни одно чтение не увидит отмененное бронирование с занятыми местами
type UseCase struct {
	bookingRepo  BookingRepository
	ledger       CapacityLedger
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledger CapacityLedger,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
// Порядок проверок: существование -> доступ -> дата активности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: user=%d, booking=%d", req.Principal.ID, req.BookingID)

	if req.Principal.ID <= 0 {
		return nil, fmt.Errorf("%w: principal id must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование существует
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		// 2. Отменять может только владелец или администратор
		if !req.Principal.CanAccessBooking(booking) {
			return ErrAccessDenied
		}

		// 3. Прошедшие активности не отменяются
		if booking.Activity == nil {
			return fmt.Errorf("%w: booking %d has no activity data", ErrInternal, booking.ID)
		}
		if booking.Activity.IsPast(now) {
			return ErrActivityInPast
		}

		// 4. Освобождаем места (счетчик не уходит ниже нуля)
		if _, err := uc.ledger.Release(txCtx, booking.ActivityID, booking.TicketsNumber); err != nil {
			return fmt.Errorf("%w: release capacity: %v", ErrInternal, err)
		}

		// 5. Удаляем строку бронирования
		if err := uc.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: delete booking: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:     booking.ID,
			ActivityID:    booking.ActivityID,
			SpotsReleased: booking.TicketsNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d (released %d spots)",
		resp.BookingID, resp.SpotsReleased)

	return resp, nil
}
