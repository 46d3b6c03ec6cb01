package sync

// Log message constants
const (
	LogMsgCheckFailedOpen      = "existence check failed, assuming updates exist"
	LogMsgCheckDone            = "existence check finished"
	LogMsgScrapeStarted        = "scrape started"
	LogMsgScrapeFinished       = "scrape finished"
	LogMsgBatchCreatorFailed   = "creator sync failed, continuing batch"
	LogMsgBatchFinished        = "account sync finished"
	LogMsgLastCheckedFailed    = "failed to update last_checked"
	LogMsgNotifyFailed         = "notification delivery failed"
	LogMsgMetaRefreshFailed    = "profile metadata refresh failed, skipping"
	LogMsgReconcileFinished    = "follow-list reconciliation finished"
	LogMsgBackfillStarted      = "item backfill for newly followed creator"
	LogMsgClearExistingApplied = "cleared existing creators before reconcile"
)

// DefaultKnownIDCacheSize bounds the cross-invocation native id cache
const DefaultKnownIDCacheSize = 4096
