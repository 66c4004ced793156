package create_reschedule

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_reschedule: booking not found")

	// ErrAccessDenied возвращается, когда клиент не владеет бронированием
	ErrAccessDenied = errors.New("create_reschedule: access denied")

	// ErrBookingNotReschedulable возвращается, когда бронирование в конечном
	// статусе и переносить нечего
	ErrBookingNotReschedulable = errors.New("create_reschedule: booking cannot be rescheduled")

	// ErrPendingExists возвращается, когда у бронирования уже есть
	// нерешённый запрос на перенос
	ErrPendingExists = errors.New("create_reschedule: pending request already exists")

	// ErrInvalidDate возвращается при некорректной запрошенной дате
	ErrInvalidDate = errors.New("create_reschedule: invalid requested date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reschedule: internal error")
)
