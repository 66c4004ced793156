package reschedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MCD-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с запросами на перенос
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на перенос
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var requestColumns = []string{
	"id",
	"booking_id",
	"requested_date",
	"requested_time",
	"reason",
	"status",
	"admin_response",
	"created_at",
	"responded_at",
}

// Create создает запрос на перенос
// Частичный уникальный индекс на (booking_id) WHERE status = 'pending'
// гарантирует не более одного активного запроса на бронирование
func (r *Repository) Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns("booking_id", "requested_date", "requested_time", "reason", "status").
		Values(
			request.BookingID,
			request.RequestedDate,
			request.RequestedTime,
			request.Reason,
			domain.RescheduleStatusPending,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&request.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrPendingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.Status = domain.RescheduleStatusPending
	request.CreatedAt = createdAt.Time

	return request, nil
}

// GetByID получает запрос на перенос по ID
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetPendingByBooking получает активный запрос на перенос для бронирования
func (r *Repository) GetPendingByBooking(ctx context.Context, bookingID int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{
			"booking_id": bookingID,
			"status":     domain.RescheduleStatusPending,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByBooking - build select query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByBooking - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// ListByBooking получает все запросы на перенос для бронирования
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.RescheduleRequest, 0)
	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// Resolve переводит запрос в конечный статус (approved или rejected)
// и возвращает записанный момент решения. Условие status = 'pending'
// делает решение однократным: повторный вызов не находит строку
// и возвращает ErrAlreadyResolved
func (r *Repository) Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminResponse *string) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", status).
		Set("admin_response", adminResponse).
		Set("responded_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.RescheduleStatusPending,
		}).
		Suffix("RETURNING responded_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	var respondedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&respondedAt)
	if err == sql.ErrNoRows {
		if _, err := r.GetByID(ctx, id); err != nil {
			return time.Time{}, ErrRequestNotFound
		}
		return time.Time{}, ErrAlreadyResolved
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	return respondedAt, nil
}

// scanRequest сканирует строку в модель запроса на перенос
func (r *Repository) scanRequest(row interface {
	Scan(dest ...interface{}) error
}) (*domain.RescheduleRequest, error) {
	var request domain.RescheduleRequest
	var createdAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.BookingID,
		&request.RequestedDate,
		&request.RequestedTime,
		&request.Reason,
		&request.Status,
		&request.AdminResponse,
		&createdAt,
		&request.RespondedAt,
	)
	if err != nil {
		return nil, err
	}

	request.CreatedAt = createdAt.Time

	return &request, nil
}
