package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/veleda/arttrack/internal/concurrency"
	"github.com/veleda/arttrack/internal/domain"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/metrics"
	"github.com/veleda/arttrack/internal/repository"
	"github.com/veleda/arttrack/internal/scrape"
)

// Extractor is the slice of the paginated extractor the orchestrator needs.
// Satisfied by *scrape.Extractor; tests substitute fakes.
type Extractor interface {
	ExtractAll(ctx context.Context, username string) (scrape.ExtractResult, error)
	ExtractUntilKnown(ctx context.Context, username string, known func(nativeID string) bool) (scrape.ExtractResult, error)
	ExtractFirstPage(ctx context.Context, username string) ([]scrape.RemoteItem, error)
}

// Notifier delivers new-item notifications. Fire and forget: failures are
// logged and counted, never propagated into a sync result.
type Notifier interface {
	Name() string
	NotifyNewItems(ctx context.Context, accountID uuid.UUID, creatorUsername string, items []domain.Item) error
}

// Service exposes the synchronization engine's public operations.
type Service interface {
	// CheckForUpdates runs the cheap page-1 existence check. Fails open:
	// any extraction or navigation failure reports updates as available.
	CheckForUpdates(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.CheckResult, error)

	// ScrapeFull walks every gallery page for the creator
	ScrapeFull(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.ScrapeResult, error)

	// ScrapeIncremental walks pages until the first already-known item
	ScrapeIncremental(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.ScrapeResult, error)

	// ScrapeAllForAccount checks then incrementally scrapes every creator,
	// continuing past per-creator failures
	ScrapeAllForAccount(ctx context.Context, accountID uuid.UUID) (*domain.BatchResult, error)

	// ReconcileFollowing diffs the remote follow list against local creators
	ReconcileFollowing(ctx context.Context, accountID uuid.UUID, remoteUsername string, clearExisting, skipItemBackfill bool) (*domain.ReconcileResult, error)
}

// Config holds sync tunables
type Config struct {
	// CreatorDelay is applied between creators in batch operations
	CreatorDelay time.Duration
	// KnownIDCacheSize bounds the cross-invocation native id cache
	KnownIDCacheSize int
}

// Dependencies groups the collaborators the service needs
type Dependencies struct {
	Creators  repository.Creator
	Items     repository.Item
	Extractor Extractor // full challenge budget
	Checker   Extractor // tighter budget for existence checks
	Following scrape.FollowingFetcher
	Meta      scrape.MetaFetcher
	Notifiers []Notifier
}

type service struct {
	deps  Dependencies
	cfg   Config
	locks *concurrency.LockManager

	// knownIDs caches native ids seen this process so overlapping triggers
	// skip redundant store scans
	knownIDs *lru.Cache[string, struct{}]

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewService creates the sync orchestrator
func NewService(deps Dependencies, cfg Config) Service {
	if cfg.KnownIDCacheSize <= 0 {
		cfg.KnownIDCacheSize = DefaultKnownIDCacheSize
	}
	cache, _ := lru.New[string, struct{}](cfg.KnownIDCacheSize)
	return &service{
		deps:     deps,
		cfg:      cfg,
		locks:    concurrency.NewLockManager(),
		knownIDs: cache,
		sleep:    sleepCtx,
		now:      time.Now,
	}
}

// CheckForUpdates compares the remote first-page latest timestamp against the
// local latest. The creator's last_checked is bumped regardless of outcome;
// it records attempts, not successes.
func (s *service) CheckForUpdates(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.CheckResult, error) {
	log := logger.FromContext(ctx)

	creator, err := s.deps.Creators.GetCreatorByID(ctx, accountID, creatorID)
	if err != nil {
		return nil, err
	}
	defer s.touchLastChecked(ctx, accountID, creatorID)

	records, err := s.deps.Checker.ExtractFirstPage(ctx, creator.Username)
	if err != nil {
		log.Warn(LogMsgCheckFailedOpen, "username", creator.Username, "error", err)
		metrics.SyncRunsTotal.WithLabelValues(metrics.OpCheck, metrics.ResultFailed).Inc()
		return &domain.CheckResult{HasUpdates: true}, nil
	}

	result := &domain.CheckResult{}
	result.RemoteLatest = latestRemoteTimestamp(records)

	local, err := s.deps.Items.GetLatestItem(ctx, accountID, creatorID)
	if err != nil {
		log.Warn(LogMsgCheckFailedOpen, "username", creator.Username, "error", err)
		metrics.SyncRunsTotal.WithLabelValues(metrics.OpCheck, metrics.ResultFailed).Inc()
		return &domain.CheckResult{HasUpdates: true, RemoteLatest: result.RemoteLatest}, nil
	}
	if local != nil {
		t := itemRecency(*local)
		result.LocalLatest = &t
	}

	switch {
	case len(records) == 0:
		// Remote has nothing; a full walk would find nothing either
		result.HasUpdates = false
	case result.LocalLatest == nil:
		result.HasUpdates = true
	case result.RemoteLatest == nil:
		// Records exist but carry no timestamps; prefer a wasted scan
		// over silently missing content
		result.HasUpdates = true
	default:
		result.HasUpdates = result.RemoteLatest.After(*result.LocalLatest)
	}

	log.Debug(LogMsgCheckDone, "username", creator.Username, "has_updates", result.HasUpdates)
	metrics.SyncRunsTotal.WithLabelValues(metrics.OpCheck, metrics.ResultOK).Inc()
	return result, nil
}

// ScrapeFull walks every page and stores everything found. Field drift on a
// previously seen item resurfaces it as new; a user-triggered full scrape is
// the one context where that is wanted.
func (s *service) ScrapeFull(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.ScrapeResult, error) {
	return s.scrapeCreator(ctx, accountID, creatorID, metrics.OpScrapeFull, domain.UpsertOptions{
		AllowInsert:      true,
		MarkUpdatesAsNew: true,
	}, nil)
}

// ScrapeIncremental stops at the first known item and never re-raises the
// new flag on drifted fields.
func (s *service) ScrapeIncremental(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.ScrapeResult, error) {
	known, err := s.knownIDFunc(ctx, accountID, creatorID)
	if err != nil {
		return nil, err
	}
	return s.scrapeCreator(ctx, accountID, creatorID, metrics.OpScrapeIncr, domain.UpsertOptions{
		AllowInsert:      true,
		MarkUpdatesAsNew: false,
	}, known)
}

func (s *service) scrapeCreator(ctx context.Context, accountID, creatorID uuid.UUID, op string, opts domain.UpsertOptions, known func(string) bool) (*domain.ScrapeResult, error) {
	log := logger.FromContext(ctx)

	creator, err := s.deps.Creators.GetCreatorByID(ctx, accountID, creatorID)
	if err != nil {
		return nil, err
	}

	// One in-flight extraction per creator; a scheduled job overlapping a
	// manual trigger waits instead of doubling requests
	lock := s.locks.GetLock(creatorID.String())
	lock.Lock()
	defer lock.Unlock()

	log.Info(LogMsgScrapeStarted, "operation", op, "username", creator.Username)

	var extracted scrape.ExtractResult
	if known == nil {
		extracted, err = s.deps.Extractor.ExtractAll(ctx, creator.Username)
	} else {
		extracted, err = s.deps.Extractor.ExtractUntilKnown(ctx, creator.Username, known)
	}
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues(op, metrics.ResultFailed).Inc()
		return nil, err
	}

	result, newItems, err := s.storeExtracted(ctx, accountID, creatorID, extracted, opts)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues(op, metrics.ResultFailed).Inc()
		return nil, err
	}

	s.touchLastChecked(ctx, accountID, creatorID)
	s.notify(ctx, accountID, creator.Username, newItems)

	log.Info(LogMsgScrapeFinished, "operation", op, "username", creator.Username,
		"total_found", result.TotalFound, "new_items", result.NewItems, "pages", result.PagesScanned)
	metrics.SyncRunsTotal.WithLabelValues(op, metrics.ResultOK).Inc()
	return result, nil
}

// storeExtracted pushes extracted records through the upsert layer
func (s *service) storeExtracted(ctx context.Context, accountID, creatorID uuid.UUID, extracted scrape.ExtractResult, opts domain.UpsertOptions) (*domain.ScrapeResult, []domain.Item, error) {
	result := &domain.ScrapeResult{
		TotalFound:   len(extracted.Items),
		PagesScanned: extracted.PagesScanned,
	}

	var newItems []domain.Item
	for _, rec := range extracted.Items {
		up, err := s.deps.Items.UpsertItem(ctx, accountID, creatorID, rec.NativeID, domain.ItemFields{
			Title:        rec.Title,
			ThumbnailURL: rec.ThumbnailURL,
			FullImageURL: rec.FullImageURL,
			PageURL:      rec.PageURL,
			PostedAt:     rec.PostedAt,
			UpdatedAt:    rec.UpdatedAt,
		}, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("upsert of item %q failed: %w", rec.NativeID, err)
		}

		s.knownIDs.Add(cacheKey(creatorID, rec.NativeID), struct{}{})
		if up.IsNew {
			result.NewItems++
			newItems = append(newItems, up.Item)
			metrics.ItemsDiscovered.Inc()
		} else if up.WasUpdated {
			result.UpdatedItems++
		}
	}
	return result, newItems, nil
}

// ScrapeAllForAccount runs check-then-scrape sequentially per creator. One
// creator's failure never aborts its siblings, and the inter-creator delay
// applies regardless of outcome to bound load on the source site.
func (s *service) ScrapeAllForAccount(ctx context.Context, accountID uuid.UUID) (*domain.BatchResult, error) {
	log := logger.FromContext(ctx)

	creators, err := s.deps.Creators.GetCreators(ctx, accountID)
	if err != nil {
		return nil, err
	}

	batch := &domain.BatchResult{Total: len(creators)}
	for i, creator := range creators {
		if i > 0 {
			if err := s.sleep(ctx, s.cfg.CreatorDelay); err != nil {
				return batch, err
			}
		}

		check, err := s.CheckForUpdates(ctx, accountID, creator.ID)
		if err != nil {
			batch.Failed++
			batch.Failures = append(batch.Failures, domain.CreatorFailure{Username: creator.Username, Error: err.Error()})
			log.Warn(LogMsgBatchCreatorFailed, "username", creator.Username, "error", err)
			continue
		}
		if !check.HasUpdates {
			batch.Skipped++
			continue
		}

		result, err := s.ScrapeIncremental(ctx, accountID, creator.ID)
		if err != nil {
			batch.Failed++
			batch.Failures = append(batch.Failures, domain.CreatorFailure{Username: creator.Username, Error: err.Error()})
			log.Warn(LogMsgBatchCreatorFailed, "username", creator.Username, "error", err)
			continue
		}

		batch.Completed++
		batch.NewItems += result.NewItems
	}

	log.Info(LogMsgBatchFinished, "account", accountID,
		"completed", batch.Completed, "skipped", batch.Skipped, "failed", batch.Failed, "new_items", batch.NewItems)
	metrics.SyncRunsTotal.WithLabelValues(metrics.OpScrapeBatch, metrics.ResultOK).Inc()
	return batch, nil
}

// knownIDFunc loads the creator's stored native ids and layers the process
// cache on top
func (s *service) knownIDFunc(ctx context.Context, accountID, creatorID uuid.UUID) (func(string) bool, error) {
	ids, err := s.deps.Items.GetKnownNativeIDs(ctx, accountID, creatorID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return func(nativeID string) bool {
		if _, ok := set[nativeID]; ok {
			return true
		}
		_, ok := s.knownIDs.Get(cacheKey(creatorID, nativeID))
		return ok
	}, nil
}

// touchLastChecked records a check attempt; failures only warn
func (s *service) touchLastChecked(ctx context.Context, accountID, creatorID uuid.UUID) {
	now := s.now()
	err := s.deps.Creators.UpdateCreator(ctx, accountID, creatorID, domain.CreatorUpdate{LastChecked: &now})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgLastCheckedFailed, "creator", creatorID, "error", err)
	}
}

// notify fans out to every notifier; failures are logged and counted only
func (s *service) notify(ctx context.Context, accountID uuid.UUID, creatorUsername string, items []domain.Item) {
	if len(items) == 0 {
		return
	}
	for _, n := range s.deps.Notifiers {
		if err := n.NotifyNewItems(ctx, accountID, creatorUsername, items); err != nil {
			logger.FromContext(ctx).Warn(LogMsgNotifyFailed, "channel", n.Name(), "error", err)
			metrics.NotificationsFailed.WithLabelValues(n.Name()).Inc()
		}
	}
}

func cacheKey(creatorID uuid.UUID, nativeID string) string {
	return creatorID.String() + ":" + nativeID
}

// latestRemoteTimestamp takes the newest record's publish timestamp, falling
// back to its last-updated timestamp. Records arrive newest first.
func latestRemoteTimestamp(records []scrape.RemoteItem) *time.Time {
	if len(records) == 0 {
		return nil
	}
	first := records[0]
	if first.PostedAt != nil {
		return first.PostedAt
	}
	return first.UpdatedAt
}

func itemRecency(it domain.Item) time.Time {
	if it.PostedAt != nil {
		return *it.PostedAt
	}
	return it.DiscoveredAt
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
