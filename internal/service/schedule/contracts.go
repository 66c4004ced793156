package schedule

import (
	"context"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetUnitsForDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
	MaxBookedForDate(ctx context.Context, date time.Time) (int, error)
	UpsertDay(ctx context.Context, day domain.DaySchedule) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
