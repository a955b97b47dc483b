package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"transportmarket/internal/metrics"
)

// metricsSet bundles the registered collectors so dig resolves them as one
// dependency instead of many same-typed counters.
type metricsSet struct {
	GateRejections    *prometheus.CounterVec
	NotificationsSent prometheus.Counter
	NotificationsFail prometheus.Counter
	TokensInvalidated prometheus.Counter
	MatchedCouriers   prometheus.Histogram
	RateLimitExceeded prometheus.Counter
	ArchivedPurged    prometheus.Counter
}

func newMetricsSet() (*metricsSet, error) {
	m := &metricsSet{
		GateRejections:    metrics.NewGateRejectionsTotal(),
		NotificationsSent: metrics.NewNotificationsSentTotal(),
		NotificationsFail: metrics.NewNotificationsFailedTotal(),
		TokensInvalidated: metrics.NewTokensInvalidatedTotal(),
		MatchedCouriers:   metrics.NewMatchedCouriers(),
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		ArchivedPurged:    metrics.NewArchivedOrdersPurgedTotal(),
	}
	for _, c := range []prometheus.Collector{
		m.GateRejections,
		m.NotificationsSent,
		m.NotificationsFail,
		m.TokensInvalidated,
		m.MatchedCouriers,
		m.RateLimitExceeded,
		m.ArchivedPurged,
	} {
		if err := prometheus.Register(c); err != nil {
			// an AlreadyRegisteredError keeps the existing collector, which
			// happens when two containers share one process in tests
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				replaceExisting(m, c, are.ExistingCollector)
				continue
			}
			return nil, err
		}
	}
	return m, nil
}

func replaceExisting(m *metricsSet, requested, existing prometheus.Collector) {
	switch requested {
	case m.GateRejections:
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.GateRejections = v
		}
	case m.NotificationsSent:
		if v, ok := existing.(prometheus.Counter); ok {
			m.NotificationsSent = v
		}
	case m.NotificationsFail:
		if v, ok := existing.(prometheus.Counter); ok {
			m.NotificationsFail = v
		}
	case m.TokensInvalidated:
		if v, ok := existing.(prometheus.Counter); ok {
			m.TokensInvalidated = v
		}
	case m.MatchedCouriers:
		if v, ok := existing.(prometheus.Histogram); ok {
			m.MatchedCouriers = v
		}
	case m.RateLimitExceeded:
		if v, ok := existing.(prometheus.Counter); ok {
			m.RateLimitExceeded = v
		}
	case m.ArchivedPurged:
		if v, ok := existing.(prometheus.Counter); ok {
			m.ArchivedPurged = v
		}
	}
}
