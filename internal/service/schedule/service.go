package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/service/schedule/models"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// Service сервис конфигурации расписания рабочих дней
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// UpsertDay создает или обновляет конфигурацию рабочего дня
// Вместимость нельзя опустить ниже уже занятых мест: существующие
// бронирования не должны оказаться за пределами вместимости
func (s *Service) UpsertDay(ctx context.Context, req *models.UpsertDayRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("UpsertDay: configuring date=%s open=%s close=%s capacity=%d by admin=%d",
		req.Date, req.OpenTime, req.CloseTime, req.Capacity, req.AdminID)

	day, err := s.validateDay(req)
	if err != nil {
		s.logger.Warn("UpsertDay: invalid request for date=%s: %v", req.Date, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		maxBooked, err := s.scheduleRepo.MaxBookedForDate(ctx, day.Date)
		if err != nil {
			return err
		}
		if day.Capacity < maxBooked {
			return fmt.Errorf("%w: capacity=%d, booked=%d", ErrCapacityBelowBooked, day.Capacity, maxBooked)
		}

		return s.scheduleRepo.UpsertDay(ctx, *day)
	})
	if err != nil {
		if errors.Is(err, ErrCapacityBelowBooked) {
			s.logger.Warn("UpsertDay: rejected for date=%s: %v", req.Date, err)
			return nil, err
		}
		s.logger.Error("UpsertDay: transaction error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: UpsertDay - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDay: successfully configured date=%s", req.Date)
	return s.GetDay(ctx, day.Date)
}

// GetDay получает конфигурацию рабочего дня со слотами
func (s *Service) GetDay(ctx context.Context, date time.Time) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDay: fetching schedule for date=%s", date.Format(domain.DateFormat))

	slots, err := s.scheduleRepo.GetUnitsForDate(ctx, date)
	if err != nil {
		s.logger.Error("GetDay: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		s.logger.Warn("GetDay: no slots configured for date=%s", date.Format(domain.DateFormat))
		return nil, ErrDayNotFound
	}

	resp := &models.DayScheduleResponse{
		Date:      date.Format(domain.DateFormat),
		OpenTime:  slots[0].StartTime.String(),
		CloseTime: slots[len(slots)-1].EndTime.String(),
		Capacity:  slots[0].Capacity,
		Units:     make([]models.SlotUnitResponse, len(slots)),
	}

	for i, slot := range slots {
		resp.Units[i] = models.SlotUnitResponse{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			Capacity:    slot.Capacity,
			BookedCount: slot.BookedCount,
		}
	}

	return resp, nil
}

// validateDay проверяет и конвертирует запрос в domain модель
func (s *Service) validateDay(req *models.UpsertDayRequest) (*domain.DaySchedule, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected %s", ErrInvalidInput, domain.DateFormat)
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time", ErrInvalidInput)
	}

	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time", ErrInvalidInput)
	}

	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}

	dayMinutes, err := openTime.MinutesUntil(closeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid working hours", ErrInvalidInput)
	}
	if dayMinutes < domain.SlotUnitMinutes {
		return nil, fmt.Errorf("%w: working day is shorter than one slot", ErrInvalidInput)
	}

	if req.Capacity < 1 || req.Capacity > domain.MaxSlotCapacity {
		return nil, fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, domain.MaxSlotCapacity)
	}

	return &domain.DaySchedule{
		Date:      date,
		OpenTime:  openTime,
		CloseTime: closeTime,
		Capacity:  req.Capacity,
	}, nil
}
