package domain

import "time"

// CheckResult is the outcome of a cheap existence check for one creator.
type CheckResult struct {
	HasUpdates   bool       `json:"has_updates"`
	RemoteLatest *time.Time `json:"remote_latest,omitempty"`
	LocalLatest  *time.Time `json:"local_latest,omitempty"`
}

// ScrapeResult is the outcome of one creator extraction.
type ScrapeResult struct {
	TotalFound   int `json:"total_found"`
	NewItems     int `json:"new_items"`
	UpdatedItems int `json:"updated_items"`
	PagesScanned int `json:"pages_scanned"`
}

// CreatorFailure records one creator's error inside a batch without aborting siblings.
type CreatorFailure struct {
	Username string `json:"username"`
	Error    string `json:"error"`
}

// BatchResult summarizes a multi-creator sync. Batches always return a
// structured summary, never an all-or-nothing error.
type BatchResult struct {
	Total     int              `json:"total"`
	Completed int              `json:"completed"`
	Skipped   int              `json:"skipped"`
	Failed    int              `json:"failed"`
	NewItems  int              `json:"new_items"`
	Failures  []CreatorFailure `json:"failures,omitempty"`
}

// ReconcileResult reports the set differences applied by a follow-list reconcile.
type ReconcileResult struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}
