package create_reschedule

import (
	"context"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPendingReschedule(ctx context.Context, id int64, pending bool) error
}

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error)
}

// EventPublisher интерфейс публикатора доменных событий
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
