package create_reschedule

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	createReschedule "github.com/m04kA/MCD-BookingService/internal/usecase/create_reschedule"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// CreateRescheduleRequest HTTP request model
type CreateRescheduleRequest struct {
	RequestedDate string `json:"requestedDate"` // "2026-03-15"
	RequestedTime string `json:"requestedTime"` // "10:00"
	Reason        string `json:"reason"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID            int64  `json:"id"`
	BookingID     int64  `json:"bookingId"`
	RequestedDate string `json:"requestedDate"`
	RequestedTime string `json:"requestedTime"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRescheduleRequest) ToUseCaseRequest(bookingID, customerID int64) (*createReschedule.Request, error) {
	requestedDate, err := time.Parse(domain.DateFormat, r.RequestedDate)
	if err != nil {
		return nil, err
	}

	requestedTime, err := types.NewTimeStringFromString(r.RequestedTime)
	if err != nil {
		return nil, err
	}

	return &createReschedule.Request{
		BookingID:  bookingID,
		CustomerID: customerID,
		Date:       requestedDate,
		StartTime:  requestedTime,
		Reason:     r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReschedule.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:            resp.ID,
		BookingID:     resp.BookingID,
		RequestedDate: resp.Date.Format(domain.DateFormat),
		RequestedTime: resp.StartTime.String(),
		Reason:        resp.Reason,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
