package get_available_slots

import (
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// computeWindows вычисляет доступность окон заданной длительности
//
// Окно длительностью duration занимает units последовательных слотов.
// Свободных мест в окне — минимум свободных мест по всем его слотам:
// бригада должна быть свободна на всем протяжении работы. Окна, частично
// выходящие за рабочие часы, не возвращаются
func computeWindows(units []*domain.TimeSlot, windowUnits int) ([]Slot, error) {
	if windowUnits <= 0 || len(units) < windowUnits {
		return []Slot{}, nil
	}

	windows := make([]Slot, 0, len(units))

	for i := 0; i+windowUnits <= len(units); i++ {
		window := units[i : i+windowUnits]

		if !isConsecutive(window) {
			continue
		}

		remaining := window[0].Remaining()
		capacity := window[0].Capacity
		for _, unit := range window[1:] {
			if unit.Remaining() < remaining {
				remaining = unit.Remaining()
			}
			if unit.Capacity < capacity {
				capacity = unit.Capacity
			}
		}

		windows = append(windows, Slot{
			StartTime:       window[0].StartTime,
			DurationMinutes: windowUnits * domain.SlotUnitMinutes,
			AvailableSpots:  remaining,
			TotalSpots:      capacity,
		})
	}

	return windows, nil
}

// isConsecutive проверяет, что слоты окна идут подряд без разрывов
func isConsecutive(window []*domain.TimeSlot) bool {
	for i := 1; i < len(window); i++ {
		if window[i-1].EndTime != window[i].StartTime {
			return false
		}
	}
	return true
}

// filterPastWindows убирает окна, которые сегодня уже начались
func filterPastWindows(windows []Slot, requestDate, now time.Time) []Slot {
	if !isSameDay(requestDate, now) {
		return windows
	}

	currentTime := types.NewTimeString(now)
	upcoming := make([]Slot, 0, len(windows))
	for _, window := range windows {
		if !window.StartTime.IsBefore(currentTime) {
			upcoming = append(upcoming, window)
		}
	}

	return upcoming
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
