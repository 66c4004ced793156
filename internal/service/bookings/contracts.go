package bookings

import (
	"context"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus *domain.PaymentStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus *domain.PaymentStatus, reason *string) error
	SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
	SetAdminNotes(ctx context.Context, id int64, notes *string) error
}

// ScheduleRepository интерфейс репозитория слотов
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncBookingTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
