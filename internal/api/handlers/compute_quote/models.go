package compute_quote

import (
	computeQuote "github.com/m04kA/MCD-BookingService/internal/usecase/compute_quote"
)

// ServiceLineRequest позиция услуги в HTTP запросе
type ServiceLineRequest struct {
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	Quantity        int     `json:"quantity"`
	DurationMinutes int     `json:"durationMinutes"`
}

// QuoteRequest HTTP request model
type QuoteRequest struct {
	VehicleSize string               `json:"vehicleSize"`
	Postcode    string               `json:"postcode"`
	Services    []ServiceLineRequest `json:"services"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ServiceSubtotal float64 `json:"serviceSubtotal"`
	SizeMultiplier  float64 `json:"sizeMultiplier"`
	SizeAdjusted    float64 `json:"sizeAdjusted"`
	TravelSurcharge float64 `json:"travelSurcharge"`
	Total           float64 `json:"total"`
	DistanceMiles   float64 `json:"distanceMiles"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() *computeQuote.Request {
	services := make([]computeQuote.ServiceLineInput, len(r.Services))
	for i, line := range r.Services {
		services[i] = computeQuote.ServiceLineInput{
			Name:            line.Name,
			BasePrice:       line.BasePrice,
			Quantity:        line.Quantity,
			DurationMinutes: line.DurationMinutes,
		}
	}

	return &computeQuote.Request{
		VehicleSize: r.VehicleSize,
		Postcode:    r.Postcode,
		Services:    services,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeQuote.Response) *QuoteResponse {
	return &QuoteResponse{
		ServiceSubtotal: resp.ServiceSubtotal,
		SizeMultiplier:  resp.SizeMultiplier,
		SizeAdjusted:    resp.SizeAdjusted,
		TravelSurcharge: resp.TravelSurcharge,
		Total:           resp.Total,
		DistanceMiles:   resp.DistanceMiles,
		DurationMinutes: resp.DurationMinutes,
	}
}
