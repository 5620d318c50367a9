package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric collectors.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Requests by method, route pattern and status
	HTTPRequestDuration *prometheus.HistogramVec // Request latency in seconds
	ActiveConnections   prometheus.Gauge         // Requests currently being served

	// Domain metrics
	BakedGoodsCreated prometheus.Counter
	BakedGoodsDeleted prometheus.Counter
	BakeryUpdates     prometheus.Counter
	EventsPublished   *prometheus.CounterVec // Event deliveries by sink and result

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rejected requests by route pattern

	// Live feed
	WebSocketClients prometheus.Gauge
}

// NewMetrics creates and registers all collectors. A nil reg uses the
// default registerer, which also carries the Go and process collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// 5ms to 5s; SQLite-backed handlers are fast.
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_requests",
				Help: "Current number of in-flight HTTP requests",
			},
		),

		BakedGoodsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bakery_baked_goods_created_total",
				Help: "Total number of baked goods created",
			},
		),

		BakedGoodsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bakery_baked_goods_deleted_total",
				Help: "Total number of baked goods deleted",
			},
		),

		BakeryUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bakery_updates_total",
				Help: "Total number of bakery updates",
			},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bakery_events_published_total",
				Help: "Domain event deliveries by sink (websocket, mqtt, influxdb) and result",
			},
			[]string{"sink", "result"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by route",
			},
			[]string{"endpoint"},
		),

		WebSocketClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "websocket_clients",
				Help: "Current number of connected WebSocket clients",
			},
		),
	}
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors to a
// custom registry. The default registry already has them.
func RegisterRuntimeCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordHTTPRequest records a completed request.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeLabel(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementActiveConnections increments the in-flight request gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

// DecrementActiveConnections decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordBakedGoodCreated increments the created counter.
func (m *Metrics) RecordBakedGoodCreated() {
	m.BakedGoodsCreated.Inc()
}

// RecordBakedGoodDeleted increments the deleted counter.
func (m *Metrics) RecordBakedGoodDeleted() {
	m.BakedGoodsDeleted.Inc()
}

// RecordBakeryUpdate increments the bakery update counter.
func (m *Metrics) RecordBakeryUpdate() {
	m.BakeryUpdates.Inc()
}

// RecordEventPublished records one event delivery to a sink.
func (m *Metrics) RecordEventPublished(sink string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.EventsPublished.WithLabelValues(sink, result).Inc()
}

// RecordRateLimitHit records a rejected request.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetWebSocketClients sets the connected client gauge.
func (m *Metrics) SetWebSocketClients(n int) {
	m.WebSocketClients.Set(float64(n))
}

// statusCodeLabel keeps the status label low-cardinality: codes the API
// actually returns are exact, anything else is grouped by class.
func statusCodeLabel(code int) string {
	switch code {
	case 200, 201, 400, 404, 405, 429, 500, 503:
		return strconv.Itoa(code)
	}
	switch {
	case code >= 100 && code < 600:
		return strconv.Itoa(code/100) + "xx"
	default:
		return "unknown"
	}
}
