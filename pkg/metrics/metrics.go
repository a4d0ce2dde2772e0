package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	platformRequestsTotal   *prometheus.CounterVec
	platformRequestDuration *prometheus.HistogramVec

	draftMutationsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		platformRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "platform_requests_total",
			Help:        "Total number of calls to the salon platform API",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		platformRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "platform_request_duration_seconds",
			Help:        "Salon platform API call duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		draftMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_draft_mutations_total",
			Help:        "Total number of availability draft mutations",
			ConstLabels: constLabels,
		}, []string{"action", "result"}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.platformRequestsTotal,
		m.platformRequestDuration,
		m.draftMutationsTotal,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObservePlatformCall учитывает вызов API платформы
func (m *Metrics) ObservePlatformCall(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.platformRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.platformRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncDraftMutation учитывает изменение черновика
func (m *Metrics) IncDraftMutation(action string, applied bool) {
	if m == nil {
		return
	}
	result := "applied"
	if !applied {
		result = "rejected"
	}
	m.draftMutationsTotal.WithLabelValues(action, result).Inc()
}
