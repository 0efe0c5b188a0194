package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	AlertsProcessed  prometheus.Counter
	DealsFound       prometheus.Counter
	ProcessingTime   prometheus.Histogram
	ProviderRequests *prometheus.CounterVec
	Notifications    *prometheus.CounterVec
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered against reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AlertsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_processed_total",
			Help:      "The total number of processed flight alerts",
		}),
		DealsFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deals_found_total",
			Help:      "The total number of good deals surfaced",
		}),
		ProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "alert_processing_time_seconds",
			Help:      "Time taken to process a single alert",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
		}),
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Requests sent to the flight-offers provider",
		}, []string{"endpoint", "status"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Deal notifications by channel and delivery status",
		}, []string{"channel", "status"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) ObserveAlert(elapsed time.Duration, goodDeals int) {
	if m == nil {
		return
	}
	m.AlertsProcessed.Inc()
	m.DealsFound.Add(float64(goodDeals))
	m.ProcessingTime.Observe(elapsed.Seconds())
}

func (m *Metrics) ProviderRequest(endpoint, status string) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(endpoint, status).Inc()
}

func (m *Metrics) Notification(channel, status string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) Error(operation string) {
	if m == nil {
		return
	}
	m.ErrorsCount.WithLabelValues(operation).Inc()
}
