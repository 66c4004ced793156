package domain

import (
	"time"

	"github.com/m04kA/MCD-BookingService/pkg/types"
)

// RescheduleStatus статус запроса на перенос бронирования
type RescheduleStatus string

const (
	RescheduleStatusPending  RescheduleStatus = "pending"
	RescheduleStatusApproved RescheduleStatus = "approved"
	RescheduleStatusRejected RescheduleStatus = "rejected"
)

// IsValid возвращает true для известного статуса запроса
func (s RescheduleStatus) IsValid() bool {
	switch s {
	case RescheduleStatusPending, RescheduleStatusApproved, RescheduleStatusRejected:
		return true
	default:
		return false
	}
}

// RescheduleRequest запрос клиента на перенос бронирования
//
// На одно бронирование допускается не более одного запроса в статусе pending.
// Запрос pending и флаг Booking.HasPendingReschedule — два представления
// одного факта; они меняются только совместно, в одной транзакции
type RescheduleRequest struct {
	ID        int64
	BookingID int64

	RequestedDate time.Time
	RequestedTime types.TimeString
	Reason        string

	Status        RescheduleStatus
	AdminResponse *string

	CreatedAt   time.Time
	RespondedAt *time.Time
}

// IsPending возвращает true, если запрос еще не рассмотрен
func (r *RescheduleRequest) IsPending() bool {
	return r.Status == RescheduleStatusPending
}

// IsResolved возвращает true, если по запросу принято решение
// Повторное рассмотрение решенного запроса — ошибка, не no-op:
// это защищает от дублирующихся действий администратора
func (r *RescheduleRequest) IsResolved() bool {
	return r.Status == RescheduleStatusApproved || r.Status == RescheduleStatusRejected
}
