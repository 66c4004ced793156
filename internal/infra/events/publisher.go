package events

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "events"
	ExchangeKind = "topic"
)

// Ключи маршрутизации доменных событий
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingConfirmed     = "booking.confirmed"
	KeyBookingStarted       = "booking.started"
	KeyBookingCancelled     = "booking.cancelled"
	KeyBookingCompleted     = "booking.completed"
	KeyBookingNoShow        = "booking.no_show"
	KeyBookingDeclined      = "booking.declined"
	KeyBookingPaymentFailed = "booking.payment_failed"
	KeyBookingExpired       = "booking.expired"
	KeyRescheduleRequested  = "reschedule.requested"
	KeyRescheduleApproved   = "reschedule.approved"
	KeyRescheduleRejected   = "reschedule.rejected"
)

// Publisher публикует доменные события после коммита транзакций
type Publisher interface {
	Publish(routingKey string, payload any) error
	Close()
}

// RabbitMQPublisher публикует события в topic exchange RabbitMQ
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewRabbitMQPublisher подключается к RabbitMQ и объявляет exchange событий
func NewRabbitMQPublisher(url string, logger Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// Publish сериализует payload в JSON и публикует в exchange событий
func (p *RabbitMQPublisher) Publish(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := p.channel.Publish(
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Info("events: published to %s/%s", ExchangeName, routingKey)
	return nil
}

// Close закрывает канал и соединение с RabbitMQ
func (p *RabbitMQPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher заглушка для окружений без брокера
type NoopPublisher struct{}

func (NoopPublisher) Publish(routingKey string, payload any) error { return nil }

func (NoopPublisher) Close() {}
