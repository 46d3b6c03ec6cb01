package worker

// Log messages
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgAccountSyncStart = "Scheduled account sync starting"
	LogMsgAccountSyncDone  = "Scheduled account sync finished"
	LogMsgSyncSkippedFull  = "Account sync skipped, queue full"
)
