package create_booking

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	createBooking "github.com/m04kA/MCD-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// ServiceLineRequest позиция услуги в HTTP запросе
type ServiceLineRequest struct {
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	Quantity        int     `json:"quantity"`
	DurationMinutes int     `json:"durationMinutes"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	VehicleMake         string  `json:"vehicleMake"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleSize         string  `json:"vehicleSize"`
	VehicleLicensePlate *string `json:"vehicleLicensePlate,omitempty"`

	AddressLine string `json:"addressLine"`
	Postcode    string `json:"postcode"`

	Services []ServiceLineRequest `json:"services"`

	ScheduledDate string `json:"scheduledDate"` // "2026-03-15"
	StartTime     string `json:"startTime"`     // "10:00"

	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

	ScheduledDate   string `json:"scheduledDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	ServiceSubtotal float64 `json:"serviceSubtotal"`
	SizeMultiplier  float64 `json:"sizeMultiplier"`
	TravelSurcharge float64 `json:"travelSurcharge"`
	TotalPrice      float64 `json:"totalPrice"`

	PaymentDeadline string `json:"paymentDeadline"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	services := make([]createBooking.ServiceLineInput, len(r.Services))
	for i, line := range r.Services {
		services[i] = createBooking.ServiceLineInput{
			Name:            line.Name,
			BasePrice:       line.BasePrice,
			Quantity:        line.Quantity,
			DurationMinutes: line.DurationMinutes,
		}
	}

	return &createBooking.Request{
		CustomerID:          customerID,
		CustomerName:        r.CustomerName,
		CustomerPhone:       r.CustomerPhone,
		VehicleMake:         r.VehicleMake,
		VehicleModel:        r.VehicleModel,
		VehicleSize:         r.VehicleSize,
		VehicleLicensePlate: r.VehicleLicensePlate,
		AddressLine:         r.AddressLine,
		Postcode:            r.Postcode,
		Services:            services,
		Date:                scheduledDate,
		StartTime:           startTime,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		ScheduledDate:   resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		ServiceSubtotal: resp.ServiceSubtotal,
		SizeMultiplier:  resp.SizeMultiplier,
		TravelSurcharge: resp.TravelSurcharge,
		TotalPrice:      resp.TotalPrice,
		PaymentDeadline: resp.PaymentDeadline.Format(time.RFC3339),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
