package list_reschedules

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("list_reschedules: booking not found")

	// ErrAccessDenied возвращается, когда клиент не владеет бронированием
	ErrAccessDenied = errors.New("list_reschedules: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_reschedules: internal error")
)
