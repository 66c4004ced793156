package create_booking

import "errors"

var (
	// ErrPostcodeNotFound возвращается, когда почтовый индекс не найден
	ErrPostcodeNotFound = errors.New("create_booking: postcode not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается при попытке забронировать уже прошедшее время
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда окно не попадает в рабочие часы
	// или время начала не выровнено по сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда в окне нет свободных мест
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
