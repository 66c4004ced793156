package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ReserveWindow(ctx context.Context, date time.Time, start types.TimeString, units int) (*domain.SlotReservation, error)
}

// GeoServiceClient интерфейс клиента для GeoService
type GeoServiceClient interface {
	GetDistanceWithGracefulDegradation(ctx context.Context, postcode string) (*geoservice.Distance, error)
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
	IncBookingCreated()
	IncSlotReservation(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
