package respond_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/schedule"
)

// UseCase use case для решения по запросу на перенос бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	rescheduleRepo RescheduleRepository
	scheduleRepo   ScheduleRepository
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rescheduleRepo RescheduleRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		rescheduleRepo: rescheduleRepo,
		scheduleRepo:   scheduleRepo,
		txManager:      txManager,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute выполняет use case решения по запросу на перенос
//
// Одобрение атомарно: резервация нового окна, освобождение старого,
// перепривязка бронирования и решение по запросу — одна сериализуемая
// транзакция. Порядок "сначала новое, потом старое" гарантирует, что
// при нехватке мест в новом окне бронирование не потеряет текущий слот:
// транзакция откатывается, запрос остаётся pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RespondReschedule: request=%d, decision=%s by admin=%d", req.RequestID, req.Decision, req.AdminID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RespondReschedule: validation failed: %v", err)
		return nil, err
	}

	var (
		result  *domain.RescheduleRequest
		booking *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		request, err := uc.rescheduleRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			return err
		}

		if request.IsResolved() {
			return ErrAlreadyResolved
		}

		booking, err = uc.bookingRepo.GetByID(txCtx, request.BookingID)
		if err != nil {
			return err
		}

		var respondedAt time.Time

		if req.Decision == DecisionApproved {
			// Бронирование могло быть отменено (клиентом или окончанием
			// дедлайна оплаты), пока запрос ждал решения; одобрение
			// зарезервировало бы новое окно для уже неактивной работы
			if !booking.Status.OccupiesSlot() {
				return ErrBookingNotActive
			}
			respondedAt, err = uc.approve(txCtx, request, booking, req.AdminResponse)
			if err != nil {
				return err
			}
			request.Status = domain.RescheduleStatusApproved
		} else {
			respondedAt, err = uc.rescheduleRepo.Resolve(txCtx, request.ID, domain.RescheduleStatusRejected, req.AdminResponse)
			if err != nil {
				return err
			}
			request.Status = domain.RescheduleStatusRejected
		}

		if err := uc.bookingRepo.SetPendingReschedule(txCtx, booking.ID, false); err != nil {
			return err
		}

		request.AdminResponse = req.AdminResponse
		request.RespondedAt = &respondedAt
		result = request
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleRepo.ErrRequestNotFound):
			uc.logger.Warn("RespondReschedule: request id=%d not found", req.RequestID)
			return nil, ErrRequestNotFound
		case errors.Is(err, ErrAlreadyResolved), errors.Is(err, rescheduleRepo.ErrAlreadyResolved):
			uc.logger.Warn("RespondReschedule: request id=%d already resolved", req.RequestID)
			return nil, ErrAlreadyResolved
		case errors.Is(err, ErrBookingNotActive):
			uc.logger.Warn("RespondReschedule: booking for request id=%d is no longer active", req.RequestID)
			return nil, ErrBookingNotActive
		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.IncSlotReservation("conflict")
			uc.logger.Warn("RespondReschedule: requested slot is full for request id=%d, request stays pending", req.RequestID)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInvalidTimeSlot):
			uc.logger.Warn("RespondReschedule: requested slot is outside working hours for request id=%d", req.RequestID)
			return nil, ErrInvalidTimeSlot
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Error("RespondReschedule: booking missing for request id=%d", req.RequestID)
			return nil, fmt.Errorf("%w: booking missing for request: %v", ErrInternal, err)
		default:
			uc.logger.Error("RespondReschedule: transaction error for request id=%d: %v", req.RequestID, err)
			return nil, fmt.Errorf("%w: transaction error: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncRescheduleDecision(req.Decision)
	uc.publishDecisionEvent(result, booking)

	uc.logger.Info("RespondReschedule: request id=%d resolved as %s", req.RequestID, req.Decision)
	return fromDomain(result), nil
}

// approve переносит бронирование на запрошенное окно
// Возвращает записанный момент решения
func (uc *UseCase) approve(ctx context.Context, request *domain.RescheduleRequest, booking *domain.Booking, adminResponse *string) (time.Time, error) {
	units := domain.UnitsForDuration(booking.DurationMinutes)

	reservation, err := uc.scheduleRepo.ReserveWindow(ctx, request.RequestedDate, request.RequestedTime, units)
	if err != nil {
		switch {
		case errors.Is(err, scheduleRepo.ErrSlotFull):
			return time.Time{}, ErrSlotNotAvailable
		case errors.Is(err, scheduleRepo.ErrSlotNotFound):
			return time.Time{}, ErrInvalidTimeSlot
		default:
			return time.Time{}, err
		}
	}

	if err := uc.scheduleRepo.Release(ctx, booking.ReservationID); err != nil {
		return time.Time{}, err
	}

	if err := uc.bookingRepo.RebindSlot(ctx, booking.ID, request.RequestedDate, request.RequestedTime, reservation.ID); err != nil {
		return time.Time{}, err
	}

	return uc.rescheduleRepo.Resolve(ctx, request.ID, domain.RescheduleStatusApproved, adminResponse)
}

// publishDecisionEvent публикует событие о решении по запросу
func (uc *UseCase) publishDecisionEvent(request *domain.RescheduleRequest, booking *domain.Booking) {
	key := events.KeyRescheduleRejected
	if request.Status == domain.RescheduleStatusApproved {
		key = events.KeyRescheduleApproved
	}

	payload := events.RescheduleEvent{
		RequestID:     request.ID,
		BookingID:     request.BookingID,
		Reference:     booking.Reference,
		RequestedDate: request.RequestedDate.Format(domain.DateFormat),
		RequestedTime: request.RequestedTime.String(),
		Status:        string(request.Status),
		OccurredAt:    time.Now().UTC(),
	}

	if err := uc.publisher.Publish(key, payload); err != nil {
		uc.logger.Error("RespondReschedule: failed to publish %s for request id=%d: %v", key, request.ID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}

	if req.Decision != DecisionApproved && req.Decision != DecisionRejected {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, req.Decision)
	}

	if req.AdminResponse != nil && len(*req.AdminResponse) > domain.MaxRescheduleAdminResponseLength {
		return fmt.Errorf("%w: adminResponse is too long", ErrInvalidInput)
	}

	return nil
}
