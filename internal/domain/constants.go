package domain

// Default configuration values
const (
	SlotUnitMinutes               = 30 // элементарная единица расписания
	DefaultSlotCapacity           = 2  // бригад на слот по умолчанию
	DefaultPaymentDeadlineMinutes = 120
	DefaultSweepIntervalSeconds   = 60
)

// Travel pricing defaults
const (
	FreeTravelRadiusMiles     = 17.5
	DefaultPerMileRate        = 1.5
	DefaultMinTravelSurcharge = 5.0
	DefaultMaxTravelSurcharge = 60.0
)

// Business validation constants
const (
	MinSlotCapacity                  = 0
	MaxSlotCapacity                  = 20
	MaxServiceLines                  = 20
	MaxServiceQuantity               = 10
	MaxDurationMinutes               = 600 // 10 hours
	MaxSpecialInstructionsLength     = 500
	MaxAdminNotesLength              = 1000
	MaxCancellationReasonLength      = 500
	MaxRescheduleReasonLength        = 500
	MaxRescheduleAdminResponseLength = 500
)

// Booking reference format: префикс + 6 символов без неоднозначных 0/O/1/I
const (
	ReferencePrefix   = "MCD-"
	ReferenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ReferenceLength   = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список конечных статусов бронирований
// Используется для фильтрации при выборках активных бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
	StatusDeclined,
	StatusCompleted,
}

// OccupyingStatuses список статусов, удерживающих место в слоте
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusPaymentFailed,
	StatusConfirmed,
	StatusInProgress,
}
