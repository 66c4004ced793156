package create_reschedule

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID  int64            // ID бронирования
	CustomerID int64            // ID клиента (владельца бронирования)
	Date       time.Time        // Запрошенная дата (без времени)
	StartTime  types.TimeString // Запрошенное время начала
	Reason     string           // Причина переноса
}

// Response модель ответа с созданным запросом на перенос
type Response struct {
	ID        int64  // ID запроса
	BookingID int64  // ID бронирования
	Date      time.Time
	StartTime types.TimeString
	Reason    string
	Status    string
	CreatedAt time.Time
}

// fromDomain конвертирует запрос на перенос в response
func fromDomain(r *domain.RescheduleRequest) *Response {
	return &Response{
		ID:        r.ID,
		BookingID: r.BookingID,
		Date:      r.RequestedDate,
		StartTime: r.RequestedTime,
		Reason:    r.Reason,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
