package get_available_slots

import (
	"time"

	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// Request модель запроса на получение доступных окон
type Request struct {
	Date            time.Time // Дата, на которую запрашиваются окна (без времени)
	DurationMinutes int       // Суммарная длительность выбранных услуг
}

// Response модель ответа со списком доступных окон
type Response struct {
	Date            time.Time // Дата, на которую запрашивались окна
	DurationMinutes int       // Запрошенная длительность
	Slots           []Slot    // Окна с хотя бы одним свободным местом
}

// Slot модель доступного окна
type Slot struct {
	StartTime       types.TimeString // Время начала окна (например, "10:00")
	DurationMinutes int              // Длительность окна в минутах
	AvailableSpots  int              // min свободных мест по всем слотам окна
	TotalSpots      int              // Вместимость окна
}
