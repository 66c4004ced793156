package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// UseCase use case для получения доступных окон для бронирования
type UseCase struct {
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных окон
//
// Чтение без блокировок: ответ — снимок доступности, который может
// устареть к моменту создания бронирования. Гонку разрешает резервация
// при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Прошедшая дата — пустой список, не ошибка
	if isDateInPast(req.Date, now) {
		return &Response{
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 3. Получаем слоты рабочего дня
	units, err := uc.scheduleRepo.GetUnitsForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get units for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get units: %v", ErrInternal, err)
	}

	// День не сконфигурирован — пустой список, не ошибка
	if len(units) == 0 {
		uc.logger.Info("GetAvailableSlots: no working day configured for %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 4. Вычисляем доступность окон нужной длительности
	windowUnits := domain.UnitsForDuration(req.DurationMinutes)
	windows, err := computeWindows(units, windowUnits)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute windows: %v", err)
		return nil, fmt.Errorf("%w: failed to compute windows: %v", ErrInternal, err)
	}

	// 5. Для сегодняшней даты убираем уже начавшиеся окна
	windows = filterPastWindows(windows, req.Date, now)

	uc.logger.Info("GetAvailableSlots: %d windows for date=%s, duration=%d",
		len(windows), req.Date.Format(domain.DateFormat), req.DurationMinutes)

	return &Response{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           windows,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes exceeds %d", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	return nil
}
