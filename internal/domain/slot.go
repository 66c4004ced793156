package domain

import (
	"time"

	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// TimeSlot элементарная единица расписания: окно фиксированной длины
// с целочисленной вместимостью на рабочий день
//
// Инвариант 0 <= BookedCount <= Capacity поддерживается исключительно
// хранилищем слотов (условный инкремент/декремент), никогда вызывающими
type TimeSlot struct {
	ID          int64
	SlotDate    time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	BookedCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Remaining возвращает количество свободных мест в слоте
func (s *TimeSlot) Remaining() int {
	remaining := s.Capacity - s.BookedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull возвращает true, если свободных мест нет
func (s *TimeSlot) IsFull() bool {
	return s.BookedCount >= s.Capacity
}

// SlotReservation захват вместимости одного или нескольких
// последовательных слотов под бронирование
//
// ReleasedAt используется как guard идемпотентности освобождения:
// повторный release уже освобожденной резервации — no-op
type SlotReservation struct {
	ID         int64
	SlotDate   time.Time
	StartTime  types.TimeString
	Units      int // количество занятых последовательных слотов
	ReleasedAt *time.Time
	CreatedAt  time.Time
}

// IsReleased возвращает true, если резервация уже освобождена
func (r *SlotReservation) IsReleased() bool {
	return r.ReleasedAt != nil
}

// AvailableSlot доступность окна нужной длительности с началом в слоте
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Remaining       int // min свободных мест по всем затрагиваемым слотам
	Capacity        int
}

// IsAvailable возвращает true, если окно можно забронировать
func (s *AvailableSlot) IsAvailable() bool {
	return s.Remaining > 0
}

// UnitsForDuration возвращает количество элементарных слотов,
// которое занимает окно указанной длительности
func UnitsForDuration(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	units := durationMinutes / SlotUnitMinutes
	if durationMinutes%SlotUnitMinutes != 0 {
		units++
	}
	return units
}

// DaySchedule конфигурация рабочего дня: окно работы и вместимость
// Задается администратором (настройка "Add Time Slots") и читается
// менеджером доступности как данность
type DaySchedule struct {
	Date      time.Time
	OpenTime  types.TimeString
	CloseTime types.TimeString
	Capacity  int
}
