package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameSignUps               = "signups_total"
	MetricNameSignIns               = "signins_total"
	MetricNameSignInFailures        = "signin_failures_total"
	MetricNameCollectionSaves       = "collection_saves_total"
	MetricNameCollectionParseErrors = "collection_parse_errors_total"
	MetricNameCountQueries          = "count_queries_total"
	MetricNameAssistantRequests     = "assistant_requests_total"
	MetricNameNotificationsSent     = "notifications_sent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextSignUps               = "Total number of successful sign-ups"
	HelpTextSignIns               = "Total number of successful sign-ins"
	HelpTextSignInFailures        = "Total number of failed sign-in attempts"
	HelpTextCollectionSaves       = "Total number of collection replace-all saves"
	HelpTextCollectionParseErrors = "Total number of stored records dropped as unparseable"
	HelpTextCountQueries          = "Total number of per-family count queries"
	HelpTextAssistantRequests     = "Total number of assistant chat requests"
	HelpTextNotificationsSent     = "Total number of notifications delivered"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelFamily = "family"
	LabelResult = "result"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
