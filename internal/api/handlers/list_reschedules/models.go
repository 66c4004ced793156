package list_reschedules

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	listReschedules "github.com/m04kA/MCD-BookingService/internal/usecase/list_reschedules"
)

// RescheduleItemResponse один запрос на перенос в HTTP ответе
type RescheduleItemResponse struct {
	ID            int64   `json:"id"`
	RequestedDate string  `json:"requestedDate"`
	RequestedTime string  `json:"requestedTime"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	AdminResponse *string `json:"adminResponse,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	RespondedAt   *string `json:"respondedAt,omitempty"`
}

// RescheduleListResponse HTTP response model
type RescheduleListResponse struct {
	BookingID int64                    `json:"bookingId"`
	Requests  []RescheduleItemResponse `json:"requests"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listReschedules.Response) *RescheduleListResponse {
	items := make([]RescheduleItemResponse, len(resp.Requests))
	for i, r := range resp.Requests {
		var respondedAt *string
		if r.RespondedAt != nil {
			formatted := r.RespondedAt.Format(time.RFC3339)
			respondedAt = &formatted
		}

		items[i] = RescheduleItemResponse{
			ID:            r.ID,
			RequestedDate: r.RequestedDate.Format(domain.DateFormat),
			RequestedTime: r.RequestedTime.String(),
			Reason:        r.Reason,
			Status:        r.Status,
			AdminResponse: r.AdminResponse,
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
			RespondedAt:   respondedAt,
		}
	}

	return &RescheduleListResponse{
		BookingID: resp.BookingID,
		Requests:  items,
	}
}
