package update_booking_status

import (
	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(adminID int64) *models.TransitionRequest {
	return &models.TransitionRequest{
		AdminID: adminID,
		Status:  r.Status,
		Reason:  r.Reason,
	}
}
