package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "arttrack_http_requests_total"
	MetricNameHTTPRequestDuration  = "arttrack_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "arttrack_http_requests_in_flight"

	MetricNameSyncRunsTotal       = "arttrack_sync_runs_total"
	MetricNameItemsDiscovered     = "arttrack_items_discovered_total"
	MetricNamePagesFetched        = "arttrack_pages_fetched_total"
	MetricNameChallengesDetected  = "arttrack_challenges_detected_total"
	MetricNameChallengeTimeouts   = "arttrack_challenge_timeouts_total"
	MetricNameNotificationsFailed = "arttrack_notifications_failed_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total HTTP requests processed"
	HelpTextHTTPRequestDuration  = "HTTP request latency distribution"
	HelpTextHTTPRequestsInFlight = "HTTP requests currently being served"

	HelpTextSyncRunsTotal       = "Sync operations run, by operation and result"
	HelpTextItemsDiscovered     = "New items discovered by the sync engine"
	HelpTextPagesFetched        = "Gallery pages fetched from the source site"
	HelpTextChallengesDetected  = "Anti-bot challenge pages encountered"
	HelpTextChallengeTimeouts   = "Challenge waits that exhausted their budget"
	HelpTextNotificationsFailed = "Notification deliveries that failed"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelChannel   = "channel"
)

// Operation label values
const (
	OpCheck       = "check"
	OpScrapeFull  = "scrape_full"
	OpScrapeIncr  = "scrape_incremental"
	OpScrapeBatch = "scrape_batch"
	OpReconcile   = "reconcile"
)

// Result label values
const (
	ResultOK      = "ok"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// HTTPLatencyBuckets covers fast local handlers through slow scrape triggers
var HTTPLatencyBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60, 180}
