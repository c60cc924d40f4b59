package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
	ValidationFailures     *prometheus.CounterVec
	OrdersCreated          prometheus.Counter
	NotificationsPublished *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total HTTP requests by route, method, and status class.",
		}, []string{"route", "method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_schema_validation_failures_total",
			Help: "Schema validation failures by union.",
		}, []string{"union"}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created.",
		}),
		NotificationsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_notifications_published_total",
			Help: "Notifications accepted for delivery, by variant.",
		}, []string{"type"}),
	}
}

// NewForTest creates metrics on a private registry so parallel tests never
// collide on the default registerer.
func NewForTest() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total HTTP requests by route, method, and status class.",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_schema_validation_failures_total",
			Help: "Schema validation failures by union.",
		}, []string{"union"}),
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders created.",
		}),
		NotificationsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_notifications_published_total",
			Help: "Notifications accepted for delivery, by variant.",
		}, []string{"type"}),
	}
}
