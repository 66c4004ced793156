package schedule

import "errors"

var (
	// ErrDayNotFound возвращается, когда на дату не сконфигурировано ни одного слота
	ErrDayNotFound = errors.New("day schedule not found")

	// ErrCapacityBelowBooked возвращается при попытке уменьшить вместимость
	// ниже уже занятых мест
	ErrCapacityBelowBooked = errors.New("capacity below booked count")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
