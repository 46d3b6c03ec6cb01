package scrape

import (
	"context"
	"errors"
	"time"

	"github.com/veleda/arttrack/internal/logger"
)

// Extractor walks a creator's gallery pages in strictly increasing order.
// Page N's record count decides whether page N+1 is requested, so pages are
// never fetched ahead. Each invocation restarts at page 1.
type Extractor struct {
	fetcher   PageFetcher
	profile   ProfileFetcher
	pageSize  int
	pageDelay time.Duration

	// sleep is replaced in tests to keep walks instant
	sleep func(ctx context.Context, d time.Duration) error
}

// NewExtractor creates an extractor using the site page size and the given
// politeness delay between page fetches.
func NewExtractor(fetcher PageFetcher, profile ProfileFetcher, pageDelay time.Duration) *Extractor {
	return &Extractor{
		fetcher:   fetcher,
		profile:   profile,
		pageSize:  PageSize,
		pageDelay: pageDelay,
		sleep:     sleepCtx,
	}
}

// ExtractAll performs a full scrape: every page until a short page ends the
// walk. A first page with no parseable data falls back to the embedded
// profile-state strategies; if those also yield nothing the result is simply
// empty, not an error.
func (e *Extractor) ExtractAll(ctx context.Context, username string) (ExtractResult, error) {
	return e.walk(ctx, username, nil)
}

// ExtractUntilKnown performs an incremental scrape: the walk stops at the
// first record whose native id the caller already knows. Items on the site
// are ordered by publish recency, so everything after a known id is older.
// Reaching the last page without a match degrades to a full walk's result.
func (e *Extractor) ExtractUntilKnown(ctx context.Context, username string, known func(nativeID string) bool) (ExtractResult, error) {
	if known == nil {
		known = func(string) bool { return false }
	}
	return e.walk(ctx, username, known)
}

// ExtractFirstPage fetches only page 1, for cheap existence checks.
func (e *Extractor) ExtractFirstPage(ctx context.Context, username string) ([]RemoteItem, error) {
	return e.fetcher.FetchPage(ctx, username, 1)
}

func (e *Extractor) walk(ctx context.Context, username string, known func(string) bool) (ExtractResult, error) {
	log := logger.FromContext(ctx)
	var result ExtractResult

	for page := 1; ; page++ {
		records, err := e.fetcher.FetchPage(ctx, username, page)
		if err != nil {
			if page == 1 && errors.Is(err, ErrNoData) {
				return e.fallbackToProfile(ctx, username)
			}
			return result, err
		}
		result.PagesScanned++

		stopped := false
		for _, rec := range records {
			if known != nil && rec.NativeID != "" && known(rec.NativeID) {
				stopped = true
				break
			}
			result.Items = append(result.Items, rec)
		}
		if stopped {
			log.Debug(LogMsgStoppedAtKnownID, "username", username, "page", page)
			return result, nil
		}

		if len(records) < e.pageSize {
			return result, nil
		}

		if err := e.sleep(ctx, e.pageDelay); err != nil {
			return result, err
		}
	}
}

// fallbackToProfile runs the secondary embedded-state extraction. Yielding
// nothing here is a zero-items result for the caller, not an error.
func (e *Extractor) fallbackToProfile(ctx context.Context, username string) (ExtractResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgFallbackToProfile, "username", username)

	if e.profile == nil {
		return ExtractResult{PagesScanned: 1}, nil
	}

	items, err := e.profile.FetchProfileItems(ctx, username)
	if errors.Is(err, ErrNoData) {
		return ExtractResult{PagesScanned: 1}, nil
	}
	if err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{Items: items, PagesScanned: 1}, nil
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
