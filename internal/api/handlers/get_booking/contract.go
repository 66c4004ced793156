package get_booking

import (
	"context"

	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

// BookingService сервис бронирований
type BookingService interface {
	GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error)
	GetByReference(ctx context.Context, reference string, userID int64, isAdmin bool) (*models.BookingResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
