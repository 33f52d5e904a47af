package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpenConns prometheus.Gauge
	dbPoolIdleConns prometheus.Gauge

	chainEventsProcessed   *prometheus.CounterVec
	chainEventsSkipped     *prometheus.CounterVec
	chainFetchErrors       prometheus.Counter
	chainCursor            prometheus.Gauge
	notificationsPublished *prometheus.CounterVec
}

// New создает и регистрирует коллекторы для указанного сервиса
func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	return &Metrics{
		service: service,
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		dbPoolOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool",
			ConstLabels: labels,
		}),
		dbPoolIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the database pool",
			ConstLabels: labels,
		}),
		chainEventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "chain_events_processed_total",
			Help:        "Chain events handled by the reconciler",
			ConstLabels: labels,
		}, []string{"event"}),
		chainEventsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "chain_events_skipped_total",
			Help:        "Chain events skipped by the reconciler",
			ConstLabels: labels,
		}, []string{"event", "reason"}),
		chainFetchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "chain_fetch_errors_total",
			Help:        "Failed chain event fetches",
			ConstLabels: labels,
		}),
		chainCursor: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "chain_cursor_next_block",
			Help:        "Next block number to be scanned by the reconciler",
			ConstLabels: labels,
		}),
		notificationsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_notifications_published_total",
			Help:        "Notifications published to the broker",
			ConstLabels: labels,
		}, []string{"kind"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный SQL-запрос
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges connection pool
func (m *Metrics) SetDBPoolStats(open, idle int) {
	m.dbPoolOpenConns.Set(float64(open))
	m.dbPoolIdleConns.Set(float64(idle))
}

// IncChainEventProcessed фиксирует обработанное событие блокчейна
func (m *Metrics) IncChainEventProcessed(event string) {
	m.chainEventsProcessed.WithLabelValues(event).Inc()
}

// IncChainEventSkipped фиксирует пропущенное событие (идемпотентный no-op)
func (m *Metrics) IncChainEventSkipped(event, reason string) {
	m.chainEventsSkipped.WithLabelValues(event, reason).Inc()
}

// IncChainFetchError фиксирует ошибку получения событий
func (m *Metrics) IncChainFetchError() {
	m.chainFetchErrors.Inc()
}

// SetChainCursor обновляет gauge курсора
func (m *Metrics) SetChainCursor(nextBlock uint64) {
	m.chainCursor.Set(float64(nextBlock))
}

// IncNotificationPublished фиксирует опубликованное уведомление
func (m *Metrics) IncNotificationPublished(kind string) {
	m.notificationsPublished.WithLabelValues(kind).Inc()
}
