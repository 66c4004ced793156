package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if req.VehicleMake == "" || req.VehicleModel == "" {
		return fmt.Errorf("%w: vehicle make and model are required", ErrInvalidInput)
	}

	if !domain.VehicleSize(req.VehicleSize).IsValid() {
		return fmt.Errorf("%w: unknown vehicle size %q", ErrInvalidInput, req.VehicleSize)
	}

	if req.AddressLine == "" {
		return fmt.Errorf("%w: addressLine is required", ErrInvalidInput)
	}

	if req.Postcode == "" {
		return fmt.Errorf("%w: postcode is required", ErrInvalidInput)
	}

	if err := validateServices(req.Services); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validateStartAligned(req.StartTime); err != nil {
		return err
	}

	if req.SpecialInstructions != nil && len(*req.SpecialInstructions) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: specialInstructions is too long", ErrInvalidInput)
	}

	return nil
}

// validateServices валидирует список выбранных услуг
func validateServices(services []ServiceLineInput) error {
	if len(services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(services) > domain.MaxServiceLines {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServiceLines)
	}

	totalDuration := 0
	for _, line := range services {
		if line.Name == "" {
			return fmt.Errorf("%w: service name is required", ErrInvalidInput)
		}
		if line.BasePrice < 0 {
			return fmt.Errorf("%w: service price must not be negative", ErrInvalidInput)
		}
		if line.Quantity < 1 || line.Quantity > domain.MaxServiceQuantity {
			return fmt.Errorf("%w: service quantity must be between 1 and %d", ErrInvalidInput, domain.MaxServiceQuantity)
		}
		if line.DurationMinutes <= 0 {
			return fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
		}
		totalDuration += line.DurationMinutes * line.Quantity
	}

	if totalDuration > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: total duration exceeds %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	return nil
}

// validateStartAligned проверяет, что время начала выровнено по сетке слотов
func validateStartAligned(start types.TimeString) error {
	parsed, err := start.ToTime()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if parsed.Minute()%domain.SlotUnitMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d minutes", ErrInvalidTimeSlot, domain.SlotUnitMinutes)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// validateBookingTime проверяет, что окно сегодня ещё не началось
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return ErrTooLateToBook
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
