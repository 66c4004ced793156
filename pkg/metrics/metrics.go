package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Метрики базы данных
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBWaitCount     prometheus.Gauge

	// Доменные метрики
	BookingsCreatedTotal     prometheus.Counter
	BookingTransitionsTotal  *prometheus.CounterVec
	SlotReservationsTotal    *prometheus.CounterVec
	RescheduleDecisionsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: labels,
		}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: labels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: labels,
		}),

		DBIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: labels,
		}),

		DBWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		BookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: labels,
		}),

		BookingTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Total number of booking status transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),

		SlotReservationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Total number of slot reservation attempts",
			ConstLabels: labels,
		}, []string{"result"}),

		RescheduleDecisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reschedule_decisions_total",
			Help:        "Total number of reschedule request decisions",
			ConstLabels: labels,
		}, []string{"decision"}),
	}
}

// ObserveHTTPRequest записывает метрики обработанного HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Доменные счётчики допускают nil-получателя: при выключенных метриках
// сервисы и use cases получают nil и вызовы превращаются в no-op

// IncBookingCreated увеличивает счётчик созданных бронирований
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.Inc()
}

// IncBookingTransition увеличивает счётчик переходов статусов бронирований
func (m *Metrics) IncBookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitionsTotal.WithLabelValues(from, to).Inc()
}

// IncSlotReservation увеличивает счётчик попыток резервации слотов
func (m *Metrics) IncSlotReservation(result string) {
	if m == nil {
		return
	}
	m.SlotReservationsTotal.WithLabelValues(result).Inc()
}

// IncRescheduleDecision увеличивает счётчик решений по запросам на перенос
func (m *Metrics) IncRescheduleDecision(decision string) {
	if m == nil {
		return
	}
	m.RescheduleDecisionsTotal.WithLabelValues(decision).Inc()
}

// ObserveDBQuery записывает метрики выполненного запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
