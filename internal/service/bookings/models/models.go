package models

import (
	"errors"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// TransitionRequest запрос на перевод бронирования в новый статус
type TransitionRequest struct {
	AdminID int64   `json:"adminId"`
	Status  string  `json:"status"`
	Reason  *string `json:"reason,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования клиентом
type CancelBookingRequest struct {
	CustomerID int64   `json:"customerId"`
	Reason     *string `json:"reason,omitempty"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос на получение бронирований с фильтрацией (панель оператора)
type ListBookingsRequest struct {
	CustomerID        *int64     `json:"customerId,omitempty"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	Status            *string    `json:"status,omitempty"`
	IncludeInactive   bool       `json:"includeInactive,omitempty"`
	PendingReschedule *bool      `json:"pendingReschedule,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID:        r.CustomerID,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		IncludeInactive:   r.IncludeInactive,
		PendingReschedule: r.PendingReschedule,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// SetAdminNotesRequest запрос на обновление заметок оператора
type SetAdminNotesRequest struct {
	AdminID int64   `json:"adminId"`
	Notes   *string `json:"notes"`
}

// Response модели

// ServiceLineResponse позиция услуги в бронировании
type ServiceLineResponse struct {
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	Quantity        int     `json:"quantity"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

	CustomerID    int64   `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	VehicleMake         string  `json:"vehicleMake"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleSize         string  `json:"vehicleSize"`
	VehicleLicensePlate *string `json:"vehicleLicensePlate,omitempty"`

	AddressLine   string  `json:"addressLine"`
	Postcode      string  `json:"postcode"`
	DistanceMiles float64 `json:"distanceMiles"`

	Services        []ServiceLineResponse `json:"services"`
	DurationMinutes int                   `json:"durationMinutes"`

	ScheduledDate string `json:"scheduledDate"` // "2026-03-15"
	StartTime     string `json:"startTime"`     // "10:00"

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	ServiceSubtotal float64 `json:"serviceSubtotal"`
	SizeMultiplier  float64 `json:"sizeMultiplier"`
	TravelSurcharge float64 `json:"travelSurcharge"`
	TotalPrice      float64 `json:"totalPrice"`

	SpecialInstructions *string `json:"specialInstructions,omitempty"`
	AdminNotes          *string `json:"adminNotes,omitempty"`

	HasPendingReschedule bool   `json:"hasPendingReschedule"`
	PaymentDeadline      string `json:"paymentDeadline"` // ISO 8601 format

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	services := make([]ServiceLineResponse, len(b.Services))
	for i, line := range b.Services {
		services[i] = ServiceLineResponse{
			Name:            line.Name,
			BasePrice:       line.BasePrice,
			Quantity:        line.Quantity,
			DurationMinutes: line.DurationMinutes,
		}
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		Reference:            b.Reference,
		CustomerID:           b.CustomerID,
		CustomerName:         b.CustomerName,
		CustomerPhone:        b.CustomerPhone,
		VehicleMake:          b.VehicleMake,
		VehicleModel:         b.VehicleModel,
		VehicleSize:          string(b.VehicleSize),
		VehicleLicensePlate:  b.VehicleLicensePlate,
		AddressLine:          b.AddressLine,
		Postcode:             b.Postcode,
		DistanceMiles:        b.DistanceMiles,
		Services:             services,
		DurationMinutes:      b.DurationMinutes,
		ScheduledDate:        b.ScheduledDate.Format(domain.DateFormat),
		StartTime:            b.StartTime.String(),
		Status:               string(b.Status),
		PaymentStatus:        string(b.PaymentStatus),
		ServiceSubtotal:      b.ServiceSubtotal,
		SizeMultiplier:       b.SizeMultiplier,
		TravelSurcharge:      b.TravelSurcharge,
		TotalPrice:           b.TotalPrice,
		SpecialInstructions:  b.SpecialInstructions,
		AdminNotes:           b.AdminNotes,
		HasPendingReschedule: b.HasPendingReschedule,
		PaymentDeadline:      b.PaymentDeadline.Format(time.RFC3339),
		CancellationReason:   b.CancellationReason,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
