package respond_reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("respond_reschedule: request not found")

	// ErrAlreadyResolved возвращается при повторном решении по запросу
	ErrAlreadyResolved = errors.New("respond_reschedule: request already resolved")

	// ErrBookingNotActive возвращается при попытке одобрить перенос
	// бронирования, которое уже не удерживает слот: одобрение зарезервировало
	// бы новое окно для отменённой работы
	ErrBookingNotActive = errors.New("respond_reschedule: booking is no longer active")

	// ErrSlotNotAvailable возвращается, когда в запрошенном окне не осталось
	// мест; запрос остаётся в статусе pending, бронирование не меняется
	ErrSlotNotAvailable = errors.New("respond_reschedule: requested slot is not available")

	// ErrInvalidTimeSlot возвращается, когда запрошенное окно не попадает
	// в рабочие часы
	ErrInvalidTimeSlot = errors.New("respond_reschedule: invalid time slot")

	// ErrInvalidDecision возвращается при неизвестном решении
	ErrInvalidDecision = errors.New("respond_reschedule: invalid decision")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("respond_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("respond_reschedule: internal error")
)
