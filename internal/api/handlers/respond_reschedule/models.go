package respond_reschedule

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	respondReschedule "github.com/m04kA/MCD-BookingService/internal/usecase/respond_reschedule"
)

// RespondRescheduleRequest HTTP request model
type RespondRescheduleRequest struct {
	Decision      string  `json:"decision"` // approved | rejected
	AdminResponse *string `json:"adminResponse,omitempty"`
}

// ResolvedRescheduleResponse HTTP response model
type ResolvedRescheduleResponse struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"bookingId"`
	RequestedDate string  `json:"requestedDate"`
	RequestedTime string  `json:"requestedTime"`
	Status        string  `json:"status"`
	AdminResponse *string `json:"adminResponse,omitempty"`
	RespondedAt   *string `json:"respondedAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RespondRescheduleRequest) ToUseCaseRequest(requestID, adminID int64) *respondReschedule.Request {
	return &respondReschedule.Request{
		RequestID:     requestID,
		AdminID:       adminID,
		Decision:      r.Decision,
		AdminResponse: r.AdminResponse,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *respondReschedule.Response) *ResolvedRescheduleResponse {
	var respondedAt *string
	if resp.RespondedAt != nil {
		formatted := resp.RespondedAt.Format(time.RFC3339)
		respondedAt = &formatted
	}

	return &ResolvedRescheduleResponse{
		ID:            resp.ID,
		BookingID:     resp.BookingID,
		RequestedDate: resp.Date.Format(domain.DateFormat),
		RequestedTime: resp.StartTime.String(),
		Status:        resp.Status,
		AdminResponse: resp.AdminResponse,
		RespondedAt:   respondedAt,
	}
}
