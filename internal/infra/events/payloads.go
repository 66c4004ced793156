package events

import "time"

// BookingEvent полезная нагрузка событий жизненного цикла бронирования
type BookingEvent struct {
	BookingID     int64     `json:"booking_id"`
	Reference     string    `json:"reference"`
	CustomerID    int64     `json:"customer_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ScheduledDate string    `json:"scheduled_date"`
	StartTime     string    `json:"start_time"`
	TotalPrice    float64   `json:"total_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RescheduleEvent полезная нагрузка событий запросов на перенос
type RescheduleEvent struct {
	RequestID     int64     `json:"request_id"`
	BookingID     int64     `json:"booking_id"`
	Reference     string    `json:"reference"`
	RequestedDate string    `json:"requested_date"`
	RequestedTime string    `json:"requested_time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
