package reschedule

import (
	"github.com/m04kA/MCD-BookingService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов (может быть *sql.DB или *sql.Tx)
type DBExecutor = dbmetrics.DBExecutor

// TxExecutor интерфейс для транзакций
type TxExecutor = dbmetrics.TxExecutor
