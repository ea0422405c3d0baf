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

// Business Metrics
var (
	SignUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSignUps,
			Help: HelpTextSignUps,
		},
	)

	SignIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSignIns,
			Help: HelpTextSignIns,
		},
	)

	SignInFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSignInFailures,
			Help: HelpTextSignInFailures,
		},
	)

	CollectionSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollectionSaves,
			Help: HelpTextCollectionSaves,
		},
		[]string{LabelFamily},
	)

	CollectionParseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollectionParseErrors,
			Help: HelpTextCollectionParseErrors,
		},
		[]string{LabelFamily},
	)

	CountQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCountQueries,
			Help: HelpTextCountQueries,
		},
		[]string{LabelFamily, LabelResult},
	)

	AssistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAssistantRequests,
			Help: HelpTextAssistantRequests,
		},
		[]string{LabelResult},
	)

	NotificationsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsSent,
			Help: HelpTextNotificationsSent,
		},
	)
)
