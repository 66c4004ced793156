package mark_as_paid

import (
	"context"

	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	MarkAsPaid(ctx context.Context, bookingID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
