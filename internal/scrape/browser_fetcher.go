package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/veleda/arttrack/internal/browser"
	"github.com/veleda/arttrack/internal/challenge"
	"github.com/veleda/arttrack/internal/concurrency"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/metrics"
)

// BrowserFetcher drives the shared browser to fetch gallery pages, profile
// documents and follow lists. Every navigation passes the shared rate gate
// and then the challenge waiter before the document is read.
type BrowserFetcher struct {
	sessions   *browser.Manager
	waiter     *challenge.Waiter
	gate       *concurrency.RateGate
	baseURL    string
	navTimeout time.Duration
	budget     time.Duration
}

// NewBrowserFetcher creates a fetcher with the given challenge wait budget.
func NewBrowserFetcher(sessions *browser.Manager, waiter *challenge.Waiter, gate *concurrency.RateGate, baseURL string, navTimeout, budget time.Duration) *BrowserFetcher {
	return &BrowserFetcher{
		sessions:   sessions,
		waiter:     waiter,
		gate:       gate,
		baseURL:    strings.TrimRight(baseURL, "/"),
		navTimeout: navTimeout,
		budget:     budget,
	}
}

// WithBudget returns a copy of the fetcher using a different challenge wait
// budget. Existence checks run with a tighter budget than full scrapes.
func (f *BrowserFetcher) WithBudget(budget time.Duration) *BrowserFetcher {
	clone := *f
	clone.budget = budget
	return &clone
}

// FetchPage loads one gallery endpoint page and decodes its JSON payload.
func (f *BrowserFetcher) FetchPage(ctx context.Context, username string, page int) ([]RemoteItem, error) {
	url := f.baseURL + fmt.Sprintf(GalleryPagePathFmt, username, page)

	body, err := f.navigateAndRead(ctx, url, readBodyText)
	if err != nil {
		return nil, err
	}
	metrics.PagesFetched.Inc()
	return decodeGalleryPayload(body)
}

// FetchProfileItems loads the creator's profile page and extracts the
// embedded initial-state gallery records.
func (f *BrowserFetcher) FetchProfileItems(ctx context.Context, username string) ([]RemoteItem, error) {
	url := f.baseURL + fmt.Sprintf(ProfilePathFmt, username)

	html, err := f.navigateAndRead(ctx, url, readHTML)
	if err != nil {
		return nil, err
	}
	return DecodeEmbeddedItems(ctx, html)
}

// FetchProfileMeta reads display name and avatar from the profile page.
func (f *BrowserFetcher) FetchProfileMeta(ctx context.Context, username string) (*ProfileMeta, error) {
	url := f.baseURL + fmt.Sprintf(ProfilePathFmt, username)

	html, err := f.navigateAndRead(ctx, url, readHTML)
	if err != nil {
		return nil, err
	}
	return DecodeProfileMeta(html)
}

// FetchFollowing loads the follow-list endpoint and returns the usernames.
func (f *BrowserFetcher) FetchFollowing(ctx context.Context, username string) ([]string, error) {
	url := f.baseURL + fmt.Sprintf(FollowingPathFmt, username)

	body, err := f.navigateAndRead(ctx, url, readBodyText)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Following []string `json:"following"`
	}
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, ErrNoData
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, ErrNoData
	}
	return payload.Following, nil
}

// navigateAndRead opens a page, navigates, waits out any challenge, applies
// the reader and closes the page on every path.
func (f *BrowserFetcher) navigateAndRead(ctx context.Context, url string, read func(*rod.Page) (string, error)) (string, error) {
	if err := f.gate.Wait(ctx); err != nil {
		return "", err
	}

	page, err := f.sessions.NewPage(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = page.Close() }()

	logger.FromContext(ctx).Debug(LogMsgNavigate, "url", url)

	timed := page.Timeout(f.navTimeout)
	if err := timed.Navigate(url); err != nil {
		return "", classifyNavError(url, err)
	}
	if err := timed.WaitLoad(); err != nil {
		return "", classifyNavError(url, err)
	}

	// Challenge timeout is soft: read whatever is there and let the
	// caller's empty-result handling apply.
	if _, err := f.waiter.Await(ctx, &pageDocument{page: page}, f.budget); err != nil {
		return "", classifyNavError(url, err)
	}

	content, err := read(page)
	if err != nil {
		return "", classifyNavError(url, err)
	}
	return content, nil
}

// pageDocument adapts a rod page to the challenge.Document interface.
type pageDocument struct {
	page *rod.Page
}

func (d *pageDocument) Snapshot(context.Context) (string, string, error) {
	info, err := d.page.Info()
	if err != nil {
		return "", "", err
	}

	body, err := readBodyText(d.page)
	if err != nil {
		return "", "", err
	}
	if len(body) > challenge.BodyPrefixLen {
		body = body[:challenge.BodyPrefixLen]
	}
	return info.Title, body, nil
}

func readBodyText(page *rod.Page) (string, error) {
	el, err := page.Element("body")
	if err != nil {
		return "", err
	}
	return el.Text()
}

func readHTML(page *rod.Page) (string, error) {
	return page.HTML()
}

// classifyNavError types a navigation failure as timeout or network so the
// API layer can give differentiated guidance.
func classifyNavError(url string, err error) error {
	kind := NavKindNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = NavKindTimeout
	}
	return &NavigationError{URL: url, Kind: kind, Err: err}
}
