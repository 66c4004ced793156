package reschedule

import "errors"

var (
	// ErrRequestNotFound запрос на перенос не найден
	ErrRequestNotFound = errors.New("reschedule.repository: request not found")

	// ErrPendingExists у бронирования уже есть нерешённый запрос на перенос
	ErrPendingExists = errors.New("reschedule.repository: pending request already exists")

	// ErrAlreadyResolved запрос уже одобрен или отклонён
	ErrAlreadyResolved = errors.New("reschedule.repository: request already resolved")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("reschedule.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("reschedule.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("reschedule.repository: failed to scan row")
)
