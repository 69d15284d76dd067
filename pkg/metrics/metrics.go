package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome значения меток для доменных счётчиков
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"

	DeliveryDelivered = "delivered"
	DeliveryDropped   = "dropped"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, main передаёт nil
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingRequestsTotal *prometheus.CounterVec
	AcceptOutcomesTotal  *prometheus.CounterVec
	NotificationsTotal   *prometheus.CounterVec
	WebSocketClients     prometheus.Gauge
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		BookingRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_requests_total",
			Help:        "Appointment requests by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		AcceptOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_accept_total",
			Help:        "Appointment acceptance attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Real-time notifications by delivery result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		WebSocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "websocket_clients",
			Help:        "Number of connected WebSocket clients",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingRequestsTotal,
		m.AcceptOutcomesTotal,
		m.NotificationsTotal,
		m.WebSocketClients,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBookingRequest учитывает результат создания заявки
func (m *Metrics) ObserveBookingRequest(outcome string) {
	if m == nil {
		return
	}
	m.BookingRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAccept учитывает результат подтверждения заявки
func (m *Metrics) ObserveAccept(outcome string) {
	if m == nil {
		return
	}
	m.AcceptOutcomesTotal.WithLabelValues(outcome).Inc()
}

// ObserveNotification учитывает результат доставки уведомления
func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

// SetWebSocketClients выставляет текущее число подключённых клиентов
func (m *Metrics) SetWebSocketClients(n int) {
	if m == nil {
		return
	}
	m.WebSocketClients.Set(float64(n))
}
