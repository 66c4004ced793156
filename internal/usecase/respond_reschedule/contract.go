package respond_reschedule

import (
	"context"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	RebindSlot(ctx context.Context, id int64, date time.Time, start types.TimeString, reservationID int64) error
	SetPendingReschedule(ctx context.Context, id int64, pending bool) error
}

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminResponse *string) (time.Time, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ReserveWindow(ctx context.Context, date time.Time, start types.TimeString, units int) (*domain.SlotReservation, error)
	Release(ctx context.Context, reservationID int64) error
}

// EventPublisher интерфейс публикатора доменных событий
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncRescheduleDecision(decision string)
	IncSlotReservation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
