package list_reschedules

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// Request модель запроса истории переносов бронирования
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // ID запрашивающего
	IsAdmin   bool  // Оператор видит любые бронирования
}

// RescheduleItem один запрос на перенос в истории
type RescheduleItem struct {
	ID            int64
	RequestedDate time.Time
	RequestedTime types.TimeString
	Reason        string
	Status        string
	AdminResponse *string
	CreatedAt     time.Time
	RespondedAt   *time.Time
}

// Response модель ответа с историей переносов
type Response struct {
	BookingID int64
	Requests  []RescheduleItem
}

func fromDomainList(bookingID int64, requests []*domain.RescheduleRequest) *Response {
	items := make([]RescheduleItem, len(requests))
	for i, r := range requests {
		items[i] = RescheduleItem{
			ID:            r.ID,
			RequestedDate: r.RequestedDate,
			RequestedTime: r.RequestedTime,
			Reason:        r.Reason,
			Status:        string(r.Status),
			AdminResponse: r.AdminResponse,
			CreatedAt:     r.CreatedAt,
			RespondedAt:   r.RespondedAt,
		}
	}

	return &Response{
		BookingID: bookingID,
		Requests:  items,
	}
}
