package list_reschedules

import (
	"context"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.RescheduleRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
