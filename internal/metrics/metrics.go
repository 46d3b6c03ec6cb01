package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Sync Engine Metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRunsTotal,
			Help: HelpTextSyncRunsTotal,
		},
		[]string{LabelOperation, LabelResult},
	)

	ItemsDiscovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsDiscovered,
			Help: HelpTextItemsDiscovered,
		},
	)

	PagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePagesFetched,
			Help: HelpTextPagesFetched,
		},
	)

	ChallengesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengesDetected,
			Help: HelpTextChallengesDetected,
		},
	)

	ChallengeTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengeTimeouts,
			Help: HelpTextChallengeTimeouts,
		},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsFailed,
			Help: HelpTextNotificationsFailed,
		},
		[]string{LabelChannel},
	)
)
