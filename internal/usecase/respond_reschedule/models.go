package respond_reschedule

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// Решения по запросу на перенос
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Request модель решения по запросу на перенос
type Request struct {
	RequestID     int64   // ID запроса на перенос
	AdminID       int64   // ID оператора
	Decision      string  // approved или rejected
	AdminResponse *string // Комментарий оператора (опционально)
}

// Response модель ответа с решённым запросом
type Response struct {
	ID            int64
	BookingID     int64
	Date          time.Time
	StartTime     types.TimeString
	Status        string
	AdminResponse *string
	RespondedAt   *time.Time
}

// fromDomain конвертирует запрос на перенос в response
func fromDomain(r *domain.RescheduleRequest) *Response {
	return &Response{
		ID:            r.ID,
		BookingID:     r.BookingID,
		Date:          r.RequestedDate,
		StartTime:     r.RequestedTime,
		Status:        string(r.Status),
		AdminResponse: r.AdminResponse,
		RespondedAt:   r.RespondedAt,
	}
}
