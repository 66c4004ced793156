package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MCD-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// Repository репозиторий расписания: элементарные слоты и резервации вместимости
//
// Единственный владелец инварианта 0 <= booked_count <= capacity.
// Инкремент и декремент выполняются условными UPDATE, поэтому проверка
// и изменение счетчика — одна атомарная операция на уровне строки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// slotColumns колонки таблицы time_slots
var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"capacity",
	"booked_count",
	"created_at",
	"updated_at",
}

// GetUnitsForDate получает все слоты на дату, упорядоченные по времени начала
func (r *Repository) GetUnitsForDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetUnitsInWindow получает последовательные слоты окна: units слотов начиная
// со start с шагом domain.SlotUnitMinutes
// Если какой-то слот окна не сконфигурирован, его в результате не будет —
// вызывающая сторона сравнивает len(result) с units
func (r *Repository) GetUnitsInWindow(ctx context.Context, date time.Time, start types.TimeString, units int) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	starts, err := windowStarts(start, units)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsInWindow - compute window: %v", ErrBuildQuery, err)
	}

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"start_time": starts}).
		OrderBy("start_time ASC")

	// Внутри транзакции блокируем строки окна, чтобы параллельные
	// резервации того же окна сериализовались
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitsInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ReserveWindow атомарно занимает по одному месту в каждом слоте окна
// и создает резервацию. Все-или-ничего: если хотя бы один слот заполнен
// или не сконфигурирован, возвращается ошибка и транзакция вызывающей
// стороны откатывает уже сделанные инкременты
//
// Требует активной транзакции в контексте
func (r *Repository) ReserveWindow(ctx context.Context, date time.Time, start types.TimeString, units int) (*domain.SlotReservation, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: ReserveWindow", ErrNotInTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	starts, err := windowStarts(start, units)
	if err != nil {
		return nil, fmt.Errorf("%w: ReserveWindow - compute window: %v", ErrBuildQuery, err)
	}

	for _, unitStart := range starts {
		if err := r.incrementUnit(ctx, executor, date, unitStart); err != nil {
			return nil, err
		}
	}

	query, args, err := psqlbuilder.Insert("slot_reservations").
		Columns("slot_date", "start_time", "units").
		Values(date, start, units).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReserveWindow - build insert query: %v", ErrBuildQuery, err)
	}

	reservation := &domain.SlotReservation{
		SlotDate:  date,
		StartTime: start,
		Units:     units,
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: ReserveWindow - execute insert: %v", ErrExecQuery, err)
	}
	reservation.CreatedAt = createdAt.Time

	return reservation, nil
}

// incrementUnit условно увеличивает booked_count одного слота
// Проверка booked_count < capacity и инкремент — один UPDATE
func (r *Repository) incrementUnit(ctx context.Context, executor DBExecutor, date time.Time, start types.TimeString) error {
	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_date": date, "start_time": start}).
		Where(squirrel.Expr("booked_count < capacity")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: incrementUnit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: incrementUnit - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: incrementUnit - get rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	// Инкремент не прошел: различаем несконфигурированный слот и заполненный
	exists, err := r.unitExists(ctx, executor, date, start)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s %s", ErrSlotNotFound, date.Format(domain.DateFormat), start)
	}
	return fmt.Errorf("%w: %s %s", ErrSlotFull, date.Format(domain.DateFormat), start)
}

// unitExists проверяет, что слот на дату/время сконфигурирован
func (r *Repository) unitExists(ctx context.Context, executor DBExecutor, date time.Time, start types.TimeString) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("time_slots").
		Where(squirrel.Eq{"slot_date": date, "start_time": start}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: unitExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: unitExists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// Release освобождает резервацию: декрементирует booked_count каждого слота окна
//
// Идемпотентна: released_at выставляется условным UPDATE, повторный вызов
// для уже освобожденной резервации — no-op (поддержка повторных отмен)
//
// Требует активной транзакции в контексте
func (r *Repository) Release(ctx context.Context, reservationID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: Release", ErrNotInTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_reservations").
		Set("released_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservationID}).
		Where(squirrel.Expr("released_at IS NULL")).
		Suffix("RETURNING slot_date, start_time, units").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	var date time.Time
	var start types.TimeString
	var units int

	err = executor.QueryRowContext(ctx, query, args...).Scan(&date, &start, &units)
	if err == sql.ErrNoRows {
		// Либо резервация уже освобождена (no-op), либо её нет
		exists, exErr := r.reservationExists(ctx, executor, reservationID)
		if exErr != nil {
			return exErr
		}
		if !exists {
			return ErrReservationNotFound
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	starts, err := windowStarts(start, units)
	if err != nil {
		return fmt.Errorf("%w: Release - compute window: %v", ErrBuildQuery, err)
	}

	for _, unitStart := range starts {
		if err := r.decrementUnit(ctx, executor, date, unitStart); err != nil {
			return err
		}
	}

	return nil
}

// decrementUnit условно уменьшает booked_count одного слота
// Guard booked_count > 0 не дает счетчику уйти в минус
func (r *Repository) decrementUnit(ctx context.Context, executor DBExecutor, date time.Time, start types.TimeString) error {
	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_date": date, "start_time": start}).
		Where(squirrel.Expr("booked_count > 0")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: decrementUnit - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: decrementUnit - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// reservationExists проверяет существование резервации
func (r *Repository) reservationExists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("slot_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: reservationExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: reservationExists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// GetReservation получает резервацию по ID
func (r *Repository) GetReservation(ctx context.Context, id int64) (*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_date",
		"start_time",
		"units",
		"released_at",
		"created_at",
	).
		From("slot_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservation - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.SlotReservation
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.SlotDate,
		&reservation.StartTime,
		&reservation.Units,
		&reservation.ReleasedAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservation - scan reservation: %v", ErrScanRow, err)
	}
	reservation.CreatedAt = createdAt.Time

	return &reservation, nil
}

// MaxBookedForDate возвращает максимальный booked_count среди слотов даты
// Используется при изменении вместимости дня: уменьшать её ниже занятого нельзя
func (r *Repository) MaxBookedForDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(booked_count), 0)").
		From("time_slots").
		Where(squirrel.Eq{"slot_date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MaxBookedForDate - build select query: %v", ErrBuildQuery, err)
	}

	var max int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: MaxBookedForDate - scan: %v", ErrScanRow, err)
	}

	return max, nil
}

// UpsertDay создает или обновляет слоты рабочего дня: по одному слоту
// на каждые domain.SlotUnitMinutes от открытия до закрытия с заданной
// вместимостью. booked_count существующих слотов сохраняется
func (r *Repository) UpsertDay(ctx context.Context, day domain.DaySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	current := day.OpenTime
	for current.IsBefore(day.CloseTime) {
		end, err := current.AddMinutes(domain.SlotUnitMinutes)
		if err != nil {
			return fmt.Errorf("%w: UpsertDay - compute unit end: %v", ErrBuildQuery, err)
		}
		if end.IsAfter(day.CloseTime) {
			break
		}

		query, args, err := psqlbuilder.Insert("time_slots").
			Columns("slot_date", "start_time", "end_time", "capacity", "booked_count").
			Values(day.Date, current, end, day.Capacity, 0).
			Suffix("ON CONFLICT (slot_date, start_time) DO UPDATE SET capacity = EXCLUDED.capacity, updated_at = NOW()").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpsertDay - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpsertDay - execute insert: %v", ErrExecQuery, err)
		}

		current = end
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var slot domain.TimeSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.SlotDate,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.BookedCount,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// windowStarts возвращает времена начала всех слотов окна
func windowStarts(start types.TimeString, units int) ([]types.TimeString, error) {
	starts := make([]types.TimeString, 0, units)
	current := start
	for i := 0; i < units; i++ {
		starts = append(starts, current)
		next, err := current.AddMinutes(domain.SlotUnitMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return starts, nil
}
