package list_reschedules

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
)

// UseCase история запросов на перенос по бронированию
type UseCase struct {
	bookingRepo    BookingRepository
	rescheduleRepo RescheduleRepository
	logger         Logger
}

func NewUseCase(
	bookingRepository BookingRepository,
	rescheduleRepository RescheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepository,
		rescheduleRepo: rescheduleRepository,
		logger:         logger,
	}
}

// Execute возвращает все запросы на перенос бронирования, новые первыми.
// Клиент видит только собственные бронирования, оператор — любые.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ListReschedules: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ListReschedules: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get booking: %v", ErrInternal, err)
	}

	if !req.IsAdmin && booking.CustomerID != req.UserID {
		uc.logger.Warn("ListReschedules: access denied for booking id=%d, user=%d", req.BookingID, req.UserID)
		return nil, ErrAccessDenied
	}

	requests, err := uc.rescheduleRepo.ListByBooking(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("ListReschedules: failed to list requests for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - failed to list requests: %v", ErrInternal, err)
	}

	uc.logger.Info("ListReschedules: booking id=%d has %d reschedule requests", req.BookingID, len(requests))
	return fromDomainList(req.BookingID, requests), nil
}
