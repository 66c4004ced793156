package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Единственный владелец переходов статусов: любое изменение статуса
// проходит через таблицу допустимых переходов
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент может видеть только своё бронирование, оператор — любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.CustomerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по человекочитаемому коду
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s for user=%d", reference, userID)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.CustomerID != userID {
		s.logger.Warn("GetByReference: access denied for user=%d to booking id=%d", userID, booking.ID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings получает бронирования с гибкой фильтрацией (панель оператора)
//
// Примеры использования:
// - Все активные бронирования: ListBookings(ctx, &ListBookingsRequest{})
// - Расписание на день: StartDate и EndDate указывают на одну дату
// - Ожидающие решения по переносу: PendingReschedule = true
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "ListBookings: fetching bookings"
	if req.CustomerID != nil {
		logMsg += fmt.Sprintf(", customer=%d", *req.CustomerID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по запросу клиента
// Повторная отмена уже отменённого бронирования — no-op:
// слот освобождается ровно один раз
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by customer=%d", bookingID, req.CustomerID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to booking id=%d", req.CustomerID, bookingID)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, bookingID, domain.StatusCancelled, req.Reason)
}

// Transition переводит бронирование в новый статус (панель оператора)
// Допустимость перехода проверяется по таблице переходов; недопустимый
// переход возвращает ErrInvalidTransition
func (s *Service) Transition(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: updating booking id=%d to status=%s by admin=%d", bookingID, req.Status, req.AdminID)

	target, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	return s.transition(ctx, bookingID, target, req.Reason)
}

// MarkAsPaid подтверждает бронирование после успешной оплаты
// Работает из pending и из payment_failed (повторная попытка оплаты)
func (s *Service) MarkAsPaid(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkAsPaid: confirming booking id=%d", bookingID)
	return s.transition(ctx, bookingID, domain.StatusConfirmed, nil)
}

// RequestPayment фиксирует выставление ссылки на оплату:
// статус оплаты переходит в awaiting_payment
func (s *Service) RequestPayment(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("RequestPayment: requesting payment for booking id=%d", bookingID)

	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		// Ссылку на оплату можно выставить только до подтверждения
		if booking.Status != domain.StatusPending && booking.Status != domain.StatusPaymentFailed {
			return ErrInvalidPaymentState
		}
		if booking.PaymentStatus != domain.PaymentPending && booking.PaymentStatus != domain.PaymentFailed {
			return ErrInvalidPaymentState
		}

		if err := s.bookingRepo.SetPaymentStatus(ctx, bookingID, domain.PaymentAwaiting); err != nil {
			return err
		}

		booking.PaymentStatus = domain.PaymentAwaiting
		updated = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("RequestPayment: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, ErrInvalidPaymentState) {
			s.logger.Warn("RequestPayment: booking id=%d has incompatible payment state", bookingID)
			return nil, ErrInvalidPaymentState
		}
		s.logger.Error("RequestPayment: transaction error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: RequestPayment - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("RequestPayment: booking id=%d is awaiting payment", bookingID)
	return models.FromDomainBooking(updated), nil
}

// SetAdminNotes обновляет заметки оператора на бронировании
func (s *Service) SetAdminNotes(ctx context.Context, bookingID int64, req *models.SetAdminNotesRequest) error {
	s.logger.Info("SetAdminNotes: updating notes for booking id=%d by admin=%d", bookingID, req.AdminID)

	if err := s.bookingRepo.SetAdminNotes(ctx, bookingID, req.Notes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SetAdminNotes: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("SetAdminNotes: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: SetAdminNotes - repository error: %v", ErrInternal, err)
	}

	return nil
}

// transition выполняет переход статуса в одной транзакции:
// проверка допустимости, связанное изменение статуса оплаты и
// освобождение слота происходят атомарно; событие публикуется после коммита
func (s *Service) transition(ctx context.Context, bookingID int64, target domain.BookingStatus, reason *string) (*models.BookingResponse, error) {
	var (
		updated *domain.Booking
		from    domain.BookingStatus
		noop    bool
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		from = booking.Status

		// Повторная отмена — no-op
		if target == domain.StatusCancelled && booking.Status == domain.StatusCancelled {
			noop = true
			updated = booking
			return nil
		}

		if !domain.CanTransition(booking.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		if domain.TransitionRequiresReason(booking.Status, target) && (reason == nil || *reason == "") {
			return ErrReasonRequired
		}

		paymentStatus := domain.PaymentStatusForTransition(target, booking.PaymentStatus)

		switch target {
		case domain.StatusCancelled, domain.StatusNoShow, domain.StatusDeclined:
			err = s.bookingRepo.Cancel(ctx, bookingID, target, paymentStatus, reason)
		default:
			err = s.bookingRepo.UpdateStatus(ctx, bookingID, target, paymentStatus)
		}
		if err != nil {
			return err
		}

		if domain.TransitionReleasesSlot(booking.Status, target) {
			if err := s.scheduleRepo.Release(ctx, booking.ReservationID); err != nil {
				return err
			}
		}

		booking.Status = target
		if paymentStatus != nil {
			booking.PaymentStatus = *paymentStatus
		}
		if reason != nil {
			booking.CancellationReason = reason
		}
		updated = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("transition: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("transition: booking id=%d rejected: %v", bookingID, err)
			return nil, err
		case errors.Is(err, ErrReasonRequired):
			s.logger.Warn("transition: booking id=%d requires cancellation reason for %s -> %s", bookingID, from, target)
			return nil, ErrReasonRequired
		case errors.Is(err, scheduleRepo.ErrReservationNotFound):
			s.logger.Error("transition: reservation missing for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: transition - release error: %v", ErrInternal, err)
		default:
			s.logger.Error("transition: transaction error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: transition - transaction error: %v", ErrInternal, err)
		}
	}

	if noop {
		s.logger.Info("transition: booking id=%d already cancelled, nothing to do", bookingID)
		return models.FromDomainBooking(updated), nil
	}

	s.metrics.IncBookingTransition(string(from), string(target))
	s.publishTransitionEvent(updated)

	s.logger.Info("transition: booking id=%d moved %s -> %s", bookingID, from, target)
	return models.FromDomainBooking(updated), nil
}

// publishTransitionEvent публикует событие перехода после коммита транзакции
// Ошибка публикации логируется, но не откатывает уже совершённый переход
func (s *Service) publishTransitionEvent(booking *domain.Booking) {
	key := eventKeyForStatus(booking.Status)
	if key == "" {
		return
	}

	payload := events.BookingEvent{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		CustomerID:    booking.CustomerID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		ScheduledDate: booking.ScheduledDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
		TotalPrice:    booking.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	}

	if err := s.publisher.Publish(key, payload); err != nil {
		s.logger.Error("publishTransitionEvent: failed to publish %s for booking id=%d: %v", key, booking.ID, err)
	}
}

// eventKeyForStatus возвращает ключ маршрутизации события для статуса
// Пустая строка — переход без события (pending задаётся только при создании,
// его событие публикует create_booking)
func eventKeyForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return events.KeyBookingConfirmed
	case domain.StatusInProgress:
		return events.KeyBookingStarted
	case domain.StatusCancelled:
		return events.KeyBookingCancelled
	case domain.StatusCompleted:
		return events.KeyBookingCompleted
	case domain.StatusNoShow:
		return events.KeyBookingNoShow
	case domain.StatusDeclined:
		return events.KeyBookingDeclined
	case domain.StatusPaymentFailed:
		return events.KeyBookingPaymentFailed
	default:
		return ""
	}
}
