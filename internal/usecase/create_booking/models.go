package create_booking

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// ServiceLineInput выбранная услуга в запросе
type ServiceLineInput struct {
	Name            string  // Название услуги
	BasePrice       float64 // Базовая цена за единицу
	Quantity        int     // Количество
	DurationMinutes int     // Длительность одной единицы
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    int64   // ID клиента
	CustomerName  string  // Имя клиента
	CustomerPhone *string // Телефон (опционально)

	VehicleMake         string  // Марка автомобиля
	VehicleModel        string  // Модель автомобиля
	VehicleSize         string  // Класс размера: S, M, L, XL
	VehicleLicensePlate *string // Госномер (опционально)

	AddressLine string // Адрес выезда
	Postcode    string // Почтовый индекс для расчета расстояния

	Services []ServiceLineInput // Выбранные услуги

	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала окна (например, "10:00")

	SpecialInstructions *string // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64  // ID созданного бронирования
	Reference string // Человекочитаемый код

	CustomerID int64 // ID клиента

	ScheduledDate   time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Суммарная длительность

	Status        string // Статус бронирования
	PaymentStatus string // Статус оплаты

	// Детализация цены
	ServiceSubtotal float64
	SizeMultiplier  float64
	TravelSurcharge float64
	TotalPrice      float64

	PaymentDeadline time.Time // Дедлайн оплаты

	CreatedAt time.Time // Время создания
}

// fromDomain конвертирует созданное бронирование в response
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerID:      b.CustomerID,
		ScheduledDate:   b.ScheduledDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		ServiceSubtotal: b.ServiceSubtotal,
		SizeMultiplier:  b.SizeMultiplier,
		TravelSurcharge: b.TravelSurcharge,
		TotalPrice:      b.TotalPrice,
		PaymentDeadline: b.PaymentDeadline,
		CreatedAt:       b.CreatedAt,
	}
}
