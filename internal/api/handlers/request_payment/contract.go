package request_payment

import (
	"context"

	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	RequestPayment(ctx context.Context, bookingID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
