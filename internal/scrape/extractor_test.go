package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetcher serves a fixed sequence of pages and records every fetch
type pagedFetcher struct {
	pages   [][]RemoteItem
	err     error
	fetched []int
}

func (f *pagedFetcher) FetchPage(_ context.Context, _ string, page int) ([]RemoteItem, error) {
	f.fetched = append(f.fetched, page)
	if f.err != nil {
		return nil, f.err
	}
	if page > len(f.pages) {
		return nil, nil
	}
	return f.pages[page-1], nil
}

type fakeProfile struct {
	items []RemoteItem
	err   error
	calls int
}

func (p *fakeProfile) FetchProfileItems(context.Context, string) ([]RemoteItem, error) {
	p.calls++
	return p.items, p.err
}

func itemsNamed(ids ...string) []RemoteItem {
	items := make([]RemoteItem, len(ids))
	for i, id := range ids {
		items[i] = RemoteItem{NativeID: id, Title: "t-" + id}
	}
	return items
}

func fullPage(prefix string) []RemoteItem {
	ids := make([]string, PageSize)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return itemsNamed(ids...)
}

func newTestExtractor(f PageFetcher, p ProfileFetcher) (*Extractor, *[]time.Duration) {
	e := NewExtractor(f, p, 500*time.Millisecond)
	var sleeps []time.Duration
	e.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return e, &sleeps
}

func TestExtractAllPaginationTermination(t *testing.T) {
	// N full pages then a short page: exactly N+1 fetches, never N+2
	fetcher := &pagedFetcher{pages: [][]RemoteItem{
		fullPage("p1"),
		fullPage("p2"),
		itemsNamed("last-1", "last-2"),
	}}
	e, sleeps := newTestExtractor(fetcher, nil)

	result, err := e.ExtractAll(context.Background(), "artist")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, fetcher.fetched)
	assert.Equal(t, 3, result.PagesScanned)
	assert.Len(t, result.Items, 2*PageSize+2)
	assert.Len(t, *sleeps, 2, "politeness delay between pages, none after the last")
}

func TestExtractAllSinglePage(t *testing.T) {
	fetcher := &pagedFetcher{pages: [][]RemoteItem{itemsNamed("only")}}
	e, sleeps := newTestExtractor(fetcher, nil)

	result, err := e.ExtractAll(context.Background(), "artist")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, fetcher.fetched)
	assert.Len(t, result.Items, 1)
	assert.Empty(t, *sleeps)
}

func TestExtractUntilKnownStopsAtFirstKnownID(t *testing.T) {
	// Known ids {A,B,C}; remote newest-first sequence [D,E,A,B,C].
	// Result must be exactly {D,E} with no fetch past the page containing A.
	page1 := append(itemsNamed("D", "E", "A"), fullPage("older")[:PageSize-3]...)

	fetcher := &pagedFetcher{pages: [][]RemoteItem{page1, itemsNamed("B", "C")}}
	e, _ := newTestExtractor(fetcher, nil)

	known := map[string]bool{"A": true, "B": true, "C": true}
	result, err := e.ExtractUntilKnown(context.Background(), "artist", func(id string) bool { return known[id] })
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "D", result.Items[0].NativeID)
	assert.Equal(t, "E", result.Items[1].NativeID)
	assert.Equal(t, []int{1}, fetcher.fetched, "no fetch beyond the page containing the known id")
}

func TestExtractUntilKnownDegradesToFullWalk(t *testing.T) {
	fetcher := &pagedFetcher{pages: [][]RemoteItem{fullPage("a"), itemsNamed("tail")}}
	e, _ := newTestExtractor(fetcher, nil)

	result, err := e.ExtractUntilKnown(context.Background(), "artist", func(string) bool { return false })
	require.NoError(t, err)
	assert.Len(t, result.Items, PageSize+1)
	assert.Equal(t, []int{1, 2}, fetcher.fetched)
}

func TestExtractAllFirstPageEmptyFallsBackToProfile(t *testing.T) {
	fetcher := &pagedFetcher{err: ErrNoData}
	profile := &fakeProfile{items: itemsNamed("embedded-1", "embedded-2")}
	e, _ := newTestExtractor(fetcher, profile)

	result, err := e.ExtractAll(context.Background(), "artist")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.calls)
	assert.Len(t, result.Items, 2)
}

func TestExtractAllNoDataAnywhereIsZeroResultNotError(t *testing.T) {
	fetcher := &pagedFetcher{err: ErrNoData}
	profile := &fakeProfile{err: ErrNoData}
	e, _ := newTestExtractor(fetcher, profile)

	result, err := e.ExtractAll(context.Background(), "brand-new")
	require.NoError(t, err, "a creator with no data is empty, not broken")
	assert.Empty(t, result.Items)
}

func TestExtractAllLaterPageErrorPropagates(t *testing.T) {
	navErr := &NavigationError{URL: "u", Kind: NavKindTimeout, Err: context.DeadlineExceeded}
	fetcher := &seqErrFetcher{first: fullPage("ok"), err: navErr}
	e, _ := newTestExtractor(fetcher, nil)

	_, err := e.ExtractAll(context.Background(), "artist")
	assert.ErrorIs(t, err, &NavigationError{Kind: NavKindTimeout})
}

// seqErrFetcher serves page 1 then fails
type seqErrFetcher struct {
	first []RemoteItem
	err   error
}

func (f *seqErrFetcher) FetchPage(_ context.Context, _ string, page int) ([]RemoteItem, error) {
	if page == 1 {
		return f.first, nil
	}
	return nil, f.err
}

func TestExtractFirstPageOnly(t *testing.T) {
	fetcher := &pagedFetcher{pages: [][]RemoteItem{fullPage("p1"), fullPage("p2")}}
	e, _ := newTestExtractor(fetcher, nil)

	items, err := e.ExtractFirstPage(context.Background(), "artist")
	require.NoError(t, err)
	assert.Len(t, items, PageSize)
	assert.Equal(t, []int{1}, fetcher.fetched)
}

func TestExtractAllProfileFetcherAbsent(t *testing.T) {
	fetcher := &pagedFetcher{err: ErrNoData}
	e, _ := newTestExtractor(fetcher, nil)

	result, err := e.ExtractAll(context.Background(), "artist")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestExtractAllRealErrorOnFirstPagePropagates(t *testing.T) {
	boom := errors.New("browser gone")
	fetcher := &pagedFetcher{err: boom}
	e, _ := newTestExtractor(fetcher, nil)

	_, err := e.ExtractAll(context.Background(), "artist")
	assert.ErrorIs(t, err, boom)
}
