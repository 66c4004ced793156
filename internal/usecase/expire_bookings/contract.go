package expire_bookings

import (
	"context"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListExpiredPayment(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus *domain.PaymentStatus, reason *string) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	Release(ctx context.Context, reservationID int64) error
}

// EventPublisher интерфейс публикатора доменных событий
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncBookingTransition(from, to string)
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
