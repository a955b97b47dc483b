package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewGateRejectionsTotal returns a Prometheus counter vec for gate rejections by reason
func NewGateRejectionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gate_rejections_total",
		Help: "Total number of courier messages rejected by the offer gate",
	}, []string{"reason"})
}

// NewNotificationsSentTotal returns a Prometheus counter for delivered push notifications
func NewNotificationsSentTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of push notifications delivered",
	})
}

// NewNotificationsFailedTotal returns a Prometheus counter for failed push notifications
func NewNotificationsFailedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Total number of push notification attempts that failed",
	})
}

// NewTokensInvalidatedTotal returns a Prometheus counter for deleted push tokens
func NewTokensInvalidatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_tokens_invalidated_total",
		Help: "Total number of push tokens deleted after a permanent delivery failure",
	})
}

// NewMatchedCouriers returns a Prometheus histogram for matched couriers per order
func NewMatchedCouriers() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orders_matched_couriers",
		Help:    "Number of couriers matched per created order",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewArchivedOrdersPurgedTotal returns a Prometheus counter for purged archived orders
func NewArchivedOrdersPurgedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "archived_orders_purged_total",
		Help: "Total number of archived orders hard-deleted by the retention sweep",
	})
}
