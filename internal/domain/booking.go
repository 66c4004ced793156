package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusInProgress    BookingStatus = "in_progress"
	StatusCompleted     BookingStatus = "completed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusNoShow        BookingStatus = "no_show"
	StatusPaymentFailed BookingStatus = "payment_failed"
	StatusDeclined      BookingStatus = "declined"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentAwaiting PaymentStatus = "awaiting_payment"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "payment_failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ServiceLine позиция услуги в бронировании (снимок на момент создания)
// Изменения каталога услуг не влияют на исторические бронирования
type ServiceLine struct {
	Name            string  `json:"name"`
	BasePrice       float64 `json:"basePrice"`
	Quantity        int     `json:"quantity"`
	DurationMinutes int     `json:"durationMinutes"`
}

// LineTotal возвращает стоимость позиции без учета множителей
func (l ServiceLine) LineTotal() float64 {
	return l.BasePrice * float64(l.Quantity)
}

// ServiceLines список позиций услуг, хранится в БД как jsonb
type ServiceLines []ServiceLine

// TotalDurationMinutes возвращает суммарную длительность всех позиций
func (s ServiceLines) TotalDurationMinutes() int {
	total := 0
	for _, line := range s {
		total += line.DurationMinutes * line.Quantity
	}
	return total
}

// Value реализует driver.Valuer для записи в jsonb колонку
func (s ServiceLines) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan реализует sql.Scanner для чтения из jsonb колонки
func (s *ServiceLines) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("service lines: unsupported scan type %T", src)
	}
}

// Booking бронирование выездного детейлинга
// Владелец статусов — сервис bookings; поля меняются только через его операции
type Booking struct {
	ID        int64
	Reference string // человекочитаемый уникальный код, например "MCD-7K3Q9Z"

	CustomerID    int64
	CustomerName  string
	CustomerPhone *string

	// Снимок автомобиля на момент создания
	VehicleMake         string
	VehicleModel        string
	VehicleSize         VehicleSize
	VehicleLicensePlate *string

	// Снимок адреса на момент создания
	AddressLine   string
	Postcode      string
	DistanceMiles float64

	// Снимок выбранных услуг
	Services        ServiceLines
	DurationMinutes int

	// Привязка к слоту
	ScheduledDate time.Time
	StartTime     types.TimeString
	ReservationID int64

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Снимок расчета цены
	ServiceSubtotal float64
	SizeMultiplier  float64
	TravelSurcharge float64
	TotalPrice      float64

	SpecialInstructions *string
	AdminNotes          *string

	HasPendingReschedule bool
	PaymentDeadline      time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot возвращает true, если статус удерживает место в слоте
func (s BookingStatus) OccupiesSlot() bool {
	switch s {
	case StatusPending, StatusPaymentFailed, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

// IsTerminal возвращает true для конечных статусов
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsValid возвращает true для известного статуса бронирования
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusPaymentFailed, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsValid возвращает true для известного статуса оплаты
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentAwaiting, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

// CanAcceptReschedule возвращает true, если для бронирования можно создать
// запрос на перенос: статус удерживает слот и не является конечным
func (b *Booking) CanAcceptReschedule() bool {
	return b.Status.OccupiesSlot()
}

// IsPaid возвращает true, если бронирование оплачено
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	CustomerID        *int64         // Фильтр по клиенту (опционально)
	StartDate         *time.Time     // Начало периода (опционально)
	EndDate           *time.Time     // Конец периода (опционально)
	Status            *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive   bool           // Включать ли конечные статусы
	PendingReschedule *bool          // Фильтр по наличию активного запроса на перенос
}
