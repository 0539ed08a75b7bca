package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnloop_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// NotificationsDerived counts notification items returned by the aggregator, by kind.
	NotificationsDerived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnloop_notifications_derived_total",
			Help: "Notification items derived per listing",
		},
		[]string{"kind"},
	)

	// NameFallbacks counts display names replaced by a placeholder.
	NameFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learnloop_name_fallbacks_total",
			Help: "Display-name lookups that fell back to a placeholder",
		},
	)

	// StoreRetries counts retried store operations by outcome (recovered|exhausted).
	StoreRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnloop_store_retries_total",
			Help: "Store operations that needed at least one retry",
		},
		[]string{"outcome"},
	)

	// PushPublished counts best-effort push messages by result (ok|error).
	PushPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnloop_push_published_total",
			Help: "Push messages published to the notify channel",
		},
		[]string{"result"},
	)
)
