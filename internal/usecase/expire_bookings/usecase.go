package expire_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/infra/events"
	"github.com/m04kA/MCD-BookingService/pkg/ptr"
)

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("expire_bookings: internal error")

// expiredReason причина отмены, записываемая в бронирование
const expiredReason = "payment deadline expired"

// UseCase периодическая отмена бронирований с истекшим дедлайном оплаты
//
// Запускается по таймеру из main. Каждое истекшее бронирование отменяется
// и освобождает свои слоты в одной транзакции со всей пачкой; строки
// блокируются (FOR UPDATE), поэтому гонка с одновременным mark-as-paid
// исключена: оплата либо успевает до блокировки, либо видит отмену
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет все бронирования с истекшим дедлайном оплаты
// Возвращает количество отменённых бронирований
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()

	var expired []*domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.ListExpiredPayment(txCtx, now)
		if err != nil {
			return err
		}

		for _, booking := range bookings {
			if err := uc.bookingRepo.Cancel(txCtx, booking.ID, domain.StatusCancelled, nil, ptr.Ptr(expiredReason)); err != nil {
				return fmt.Errorf("cancel booking id=%d: %w", booking.ID, err)
			}
			if err := uc.scheduleRepo.Release(txCtx, booking.ReservationID); err != nil {
				return fmt.Errorf("release reservation id=%d: %w", booking.ReservationID, err)
			}
		}

		expired = bookings
		return nil
	})
	if err != nil {
		uc.logger.Error("ExpireBookings: sweep failed: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, booking := range expired {
		uc.metrics.IncBookingTransition(string(booking.Status), string(domain.StatusCancelled))
		uc.publishExpiredEvent(booking)
	}

	if len(expired) > 0 {
		uc.logger.Info("ExpireBookings: cancelled %d expired bookings", len(expired))
	}

	return len(expired), nil
}

// publishExpiredEvent публикует событие об истекшем бронировании
func (uc *UseCase) publishExpiredEvent(booking *domain.Booking) {
	payload := events.BookingEvent{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		CustomerID:    booking.CustomerID,
		Status:        string(domain.StatusCancelled),
		PaymentStatus: string(booking.PaymentStatus),
		ScheduledDate: booking.ScheduledDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
		TotalPrice:    booking.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	}

	if err := uc.publisher.Publish(events.KeyBookingExpired, payload); err != nil {
		uc.logger.Error("ExpireBookings: failed to publish expired event for booking id=%d: %v", booking.ID, err)
	}
}
