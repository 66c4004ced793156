package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при недопустимом переходе между статусами
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReasonRequired возвращается, когда для перехода обязательна причина
	ErrReasonRequired = errors.New("cancellation reason is required")

	// ErrInvalidPaymentState возвращается, когда операция с оплатой
	// несовместима с текущим состоянием бронирования
	ErrInvalidPaymentState = errors.New("invalid payment state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
