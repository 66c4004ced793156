package cancel_booking

import (
	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(customerID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		CustomerID: customerID,
		Reason:     r.CancellationReason,
	}
}
