package worker

import (
	"context"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/sync"
)

// AccountSyncJob runs the check-then-scrape batch for one account. It is the
// unit the scheduler enqueues on every sync tick.
type AccountSyncJob struct {
	service   sync.Service
	accountID uuid.UUID
}

// NewAccountSyncJob creates a sync job for the given account
func NewAccountSyncJob(service sync.Service, accountID uuid.UUID) *AccountSyncJob {
	return &AccountSyncJob{service: service, accountID: accountID}
}

// Process runs the batch sync. Per-creator failures are already absorbed into
// the batch result; only a whole-batch failure propagates to the pool.
func (j *AccountSyncJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAccountSyncStart, "account", j.accountID)

	batch, err := j.service.ScrapeAllForAccount(ctx, j.accountID)
	if err != nil {
		return err
	}

	log.Info(LogMsgAccountSyncDone, "account", j.accountID,
		"completed", batch.Completed, "skipped", batch.Skipped, "failed", batch.Failed, "new_items", batch.NewItems)
	return nil
}
