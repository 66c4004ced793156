package schedule

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот на запрошенную дату/время не сконфигурирован
	ErrSlotNotFound = errors.New("schedule.repository: slot not found")

	// ErrSlotFull возвращается, когда в слоте не осталось свободных мест
	ErrSlotFull = errors.New("schedule.repository: slot is full")

	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("schedule.repository: reservation not found")

	// ErrCapacityBelowBooked возвращается при попытке уменьшить вместимость
	// ниже текущего количества занятых мест
	ErrCapacityBelowBooked = errors.New("schedule.repository: capacity below booked count")

	// ErrNotInTransaction возвращается, когда мутирующая операция вызвана вне транзакции
	ErrNotInTransaction = errors.New("schedule.repository: operation requires an active transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
