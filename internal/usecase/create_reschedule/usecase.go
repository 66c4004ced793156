package create_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/reschedule"
)

// UseCase use case для создания запроса на перенос бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	rescheduleRepo RescheduleRepository
	txManager      TransactionManager
	publisher      EventPublisher
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rescheduleRepo RescheduleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		rescheduleRepo: rescheduleRepo,
		txManager:      txManager,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания запроса на перенос
//
// Запрос и флаг has_pending_reschedule на бронировании записываются
// в одной транзакции под блокировкой строки бронирования. Слот текущего
// бронирования продолжает удерживаться до решения по запросу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReschedule: booking=%d, customer=%d, date=%s, time=%s",
		req.BookingID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReschedule: validation failed: %v", err)
		return nil, err
	}

	var (
		result  *domain.RescheduleRequest
		booking *domain.Booking
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if booking.CustomerID != req.CustomerID {
			return ErrAccessDenied
		}

		if !booking.CanAcceptReschedule() {
			return ErrBookingNotReschedulable
		}

		if booking.HasPendingReschedule {
			return ErrPendingExists
		}

		request := &domain.RescheduleRequest{
			BookingID:     req.BookingID,
			RequestedDate: req.Date,
			RequestedTime: req.StartTime,
			Reason:        req.Reason,
		}

		created, err := uc.rescheduleRepo.Create(txCtx, request)
		if err != nil {
			return err
		}

		if err := uc.bookingRepo.SetPendingReschedule(txCtx, req.BookingID, true); err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("CreateReschedule: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrAccessDenied):
			uc.logger.Warn("CreateReschedule: access denied for customer=%d to booking id=%d", req.CustomerID, req.BookingID)
			return nil, ErrAccessDenied
		case errors.Is(err, ErrBookingNotReschedulable):
			uc.logger.Warn("CreateReschedule: booking id=%d is not reschedulable", req.BookingID)
			return nil, ErrBookingNotReschedulable
		case errors.Is(err, ErrPendingExists), errors.Is(err, rescheduleRepo.ErrPendingExists):
			uc.logger.Warn("CreateReschedule: booking id=%d already has a pending request", req.BookingID)
			return nil, ErrPendingExists
		default:
			uc.logger.Error("CreateReschedule: transaction error for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: transaction error: %v", ErrInternal, err)
		}
	}

	uc.publishRequestedEvent(result, booking)

	uc.logger.Info("CreateReschedule: successfully created request id=%d for booking id=%d", result.ID, req.BookingID)
	return fromDomain(result), nil
}

// publishRequestedEvent публикует событие о созданном запросе на перенос
func (uc *UseCase) publishRequestedEvent(request *domain.RescheduleRequest, booking *domain.Booking) {
	payload := events.RescheduleEvent{
		RequestID:     request.ID,
		BookingID:     request.BookingID,
		Reference:     booking.Reference,
		RequestedDate: request.RequestedDate.Format(domain.DateFormat),
		RequestedTime: request.RequestedTime.String(),
		Status:        string(request.Status),
		OccurredAt:    time.Now().UTC(),
	}

	if err := uc.publisher.Publish(events.KeyRescheduleRequested, payload); err != nil {
		uc.logger.Error("CreateReschedule: failed to publish requested event for request id=%d: %v", request.ID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	parsed, err := req.StartTime.ToTime()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if parsed.Minute()%domain.SlotUnitMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d minutes", ErrInvalidInput, domain.SlotUnitMinutes)
	}

	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxRescheduleReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
