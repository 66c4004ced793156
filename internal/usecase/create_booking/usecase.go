package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/schedule"
	geoClient "github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
)

// maxReferenceAttempts количество повторов генерации кода при коллизии
const maxReferenceAttempts = 5

// Settings параметры создания бронирований
type Settings struct {
	Tariff                 domain.TravelTariff
	PaymentDeadlineMinutes int
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	geoClient    GeoServiceClient
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	settings     Settings
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	geoClient GeoServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		geoClient:    geoClient,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		settings:     settings,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Резервация мест в слотах и запись бронирования выполняются в одной
// сериализуемой транзакции: бронирование без резервации или резервация
// без бронирования невозможны. Цена считается тем же детерминированным
// расчетом, что и котировка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, date=%s, time=%s, services=%d",
		req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Services))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и времени
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем расстояние до адреса клиента
	distanceMiles, err := uc.resolveDistance(ctx, req.Postcode)
	if err != nil {
		return nil, err
	}

	// 5. Собираем снимок услуг и считаем цену
	lines := make(domain.ServiceLines, len(req.Services))
	for i, input := range req.Services {
		lines[i] = domain.ServiceLine{
			Name:            input.Name,
			BasePrice:       input.BasePrice,
			Quantity:        input.Quantity,
			DurationMinutes: input.DurationMinutes,
		}
	}

	size := domain.VehicleSize(req.VehicleSize)
	duration := lines.TotalDurationMinutes()
	breakdown := domain.ComputePrice(lines, size, distanceMiles, uc.settings.Tariff)
	units := domain.UnitsForDuration(duration)

	uc.logger.Info("CreateBooking: customer=%d, duration=%d min (%d units), total=%.2f",
		req.CustomerID, duration, units, breakdown.Total)

	deadline := now.Add(time.Duration(uc.settings.PaymentDeadlineMinutes) * time.Minute)

	// 6. Резервируем окно и создаем бронирование в сериализуемой транзакции
	// Коллизия кода (23505) обрывает транзакцию на стороне Postgres, поэтому
	// повтор с новым кодом перезапускает транзакцию целиком, включая
	// резервацию окна
	result, err := uc.createWithReference(ctx, func(reference string) *domain.Booking {
		return &domain.Booking{
			Reference:           reference,
			CustomerID:          req.CustomerID,
			CustomerName:        req.CustomerName,
			CustomerPhone:       req.CustomerPhone,
			VehicleMake:         req.VehicleMake,
			VehicleModel:        req.VehicleModel,
			VehicleSize:         size,
			VehicleLicensePlate: req.VehicleLicensePlate,
			AddressLine:         req.AddressLine,
			Postcode:            req.Postcode,
			DistanceMiles:       distanceMiles,
			Services:            lines,
			DurationMinutes:     duration,
			ScheduledDate:       req.Date,
			StartTime:           req.StartTime,
			Status:              domain.StatusPending,
			PaymentStatus:       domain.PaymentPending,
			ServiceSubtotal:     breakdown.ServiceSubtotal,
			SizeMultiplier:      breakdown.SizeMultiplier,
			TravelSurcharge:     breakdown.TravelSurcharge,
			TotalPrice:          breakdown.Total,
			SpecialInstructions: req.SpecialInstructions,
			PaymentDeadline:     deadline,
		}
	}, units)
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotReservation("conflict")
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.metrics.IncSlotReservation("reserved")
	uc.publishCreatedEvent(result)

	uc.logger.Info("CreateBooking: successfully created booking id=%d reference=%s", result.ID, result.Reference)
	return fromDomain(result), nil
}

// createWithReference резервирует окно и сохраняет бронирование в одной
// сериализуемой транзакции, повторяя всю транзакцию с новым кодом при
// коллизии уникального индекса
func (uc *UseCase) createWithReference(ctx context.Context, build func(reference string) *domain.Booking, units int) (*domain.Booking, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference, err := generateReference()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate reference: %v", ErrInternal, err)
		}
		booking := build(reference)

		var result *domain.Booking
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			reservation, err := uc.scheduleRepo.ReserveWindow(txCtx, booking.ScheduledDate, booking.StartTime, units)
			if err != nil {
				switch {
				case errors.Is(err, scheduleRepo.ErrSlotFull):
					uc.logger.Warn("CreateBooking: window %s %s is full", booking.ScheduledDate.Format(domain.DateFormat), booking.StartTime)
					return ErrSlotNotAvailable
				case errors.Is(err, scheduleRepo.ErrSlotNotFound):
					uc.logger.Warn("CreateBooking: window %s %s is outside working hours", booking.ScheduledDate.Format(domain.DateFormat), booking.StartTime)
					return ErrInvalidTimeSlot
				default:
					uc.logger.Error("CreateBooking: failed to reserve window: %v", err)
					return fmt.Errorf("%w: failed to reserve window: %v", ErrInternal, err)
				}
			}

			booking.ReservationID = reservation.ID

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return err
			}

			result = created
			return nil
		})
		if err == nil {
			return result, nil
		}
		if errors.Is(err, bookingRepo.ErrDuplicateReference) {
			uc.logger.Warn("CreateBooking: reference collision %s, retrying", reference)
			continue
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInvalidTimeSlot) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return nil, fmt.Errorf("%w: reference collisions exhausted %d attempts", ErrInternal, maxReferenceAttempts)
}

// resolveDistance получает расстояние до клиента с graceful degradation:
// при недоступности GeoService бронирование создается без выездной надбавки
func (uc *UseCase) resolveDistance(ctx context.Context, postcode string) (float64, error) {
	distance, err := uc.geoClient.GetDistanceWithGracefulDegradation(ctx, postcode)
	if err != nil {
		if errors.Is(err, geoClient.ErrPostcodeNotFound) {
			uc.logger.Warn("CreateBooking: postcode %s not found", postcode)
			return 0, ErrPostcodeNotFound
		}
		if errors.Is(err, geoClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: geoservice degraded, booking without travel surcharge: %v", err)
			return 0, nil
		}
		uc.logger.Error("CreateBooking: failed to resolve distance for postcode=%s: %v", postcode, err)
		return 0, fmt.Errorf("%w: failed to resolve distance: %v", ErrInternal, err)
	}

	return distance.Miles, nil
}

// publishCreatedEvent публикует событие о созданном бронировании
func (uc *UseCase) publishCreatedEvent(booking *domain.Booking) {
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

	if err := uc.publisher.Publish(events.KeyBookingCreated, payload); err != nil {
		uc.logger.Error("CreateBooking: failed to publish created event for booking id=%d: %v", booking.ID, err)
	}
}
