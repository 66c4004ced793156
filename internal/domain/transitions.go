package domain

// legalTransitions таблица допустимых переходов статусов бронирования
// Начальный статус — pending; конечные — completed, cancelled, no_show, declined
var legalTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:       {StatusConfirmed, StatusPaymentFailed, StatusCancelled, StatusDeclined},
	StatusPaymentFailed: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:     {StatusInProgress, StatusCancelled},
	StatusInProgress:    {StatusCompleted, StatusNoShow, StatusCancelled},
}

// CanTransition возвращает true, если переход from -> to допустим
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionRequiresReason возвращает true, если переход требует указания причины
// Операционная отмена подтвержденного или начатого бронирования всегда с причиной
func TransitionRequiresReason(from, to BookingStatus) bool {
	if to != StatusCancelled {
		return false
	}
	return from == StatusConfirmed || from == StatusInProgress
}

// TransitionReleasesSlot возвращает true, если переход освобождает место в слоте
// completed сохраняет историческую занятость — окно слота уже прошло
func TransitionReleasesSlot(from, to BookingStatus) bool {
	if !from.OccupiesSlot() {
		return false
	}
	switch to {
	case StatusCancelled, StatusNoShow, StatusDeclined:
		return true
	default:
		return false
	}
}

// PaymentStatusForTransition возвращает новый статус оплаты, который
// переход статуса бронирования влечет за собой; nil — статус оплаты не меняется
//
// Правила:
//   - подтверждение всегда означает успешную оплату (mark-as-paid)
//   - переход в payment_failed фиксирует отклоненный платеж
//   - отмена оплаченного бронирования влечет возврат средств
func PaymentStatusForTransition(to BookingStatus, current PaymentStatus) *PaymentStatus {
	switch to {
	case StatusConfirmed:
		paid := PaymentPaid
		return &paid
	case StatusPaymentFailed:
		failed := PaymentFailed
		return &failed
	case StatusCancelled, StatusDeclined, StatusNoShow:
		if current == PaymentPaid {
			refunded := PaymentRefunded
			return &refunded
		}
	}
	return nil
}
