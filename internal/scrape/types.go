package scrape

import (
	"context"
	"time"
)

// PageSize is the number of records the site returns per full gallery page.
// A page with fewer records is the last one.
const PageSize = 30

// RemoteItem is one record extracted from the site, before storage.
type RemoteItem struct {
	NativeID     string
	Title        string
	ThumbnailURL string
	FullImageURL string
	PageURL      string
	PostedAt     *time.Time
	UpdatedAt    *time.Time
}

// PageFetcher retrieves one 1-based gallery page for a creator.
type PageFetcher interface {
	FetchPage(ctx context.Context, username string, page int) ([]RemoteItem, error)
}

// ProfileFetcher retrieves items from the embedded initial-state object on a
// creator's profile page. Secondary strategy for when the gallery endpoint
// yields nothing.
type ProfileFetcher interface {
	FetchProfileItems(ctx context.Context, username string) ([]RemoteItem, error)
}

// ProfileMeta is display metadata read from a creator's profile page.
type ProfileMeta struct {
	DisplayName string
	AvatarURL   string
}

// MetaFetcher retrieves profile display metadata, used opportunistically
// during follow-list reconciliation.
type MetaFetcher interface {
	FetchProfileMeta(ctx context.Context, username string) (*ProfileMeta, error)
}

// FollowingFetcher retrieves the usernames a creator-account follows on the
// remote site.
type FollowingFetcher interface {
	FetchFollowing(ctx context.Context, username string) ([]string, error)
}

// ExtractResult is the outcome of one extraction walk.
type ExtractResult struct {
	Items        []RemoteItem
	PagesScanned int
}
