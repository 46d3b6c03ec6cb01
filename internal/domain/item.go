package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item represents one piece of content attributed to a creator.
// The tuple (account, creator, native id) is unique; DiscoveredAt is set once
// on insert and never changes.
type Item struct {
	ID           uuid.UUID  `json:"id" db:"item_id"`
	AccountID    uuid.UUID  `json:"account_id" db:"account_id"`
	CreatorID    uuid.UUID  `json:"creator_id" db:"creator_id"`
	NativeID     string     `json:"native_id" db:"native_id"`
	Title        string     `json:"title" db:"title"`
	ThumbnailURL string     `json:"thumbnail_url" db:"thumbnail_url"`
	FullImageURL string     `json:"full_image_url,omitempty" db:"full_image_url"`
	PageURL      string     `json:"page_url" db:"page_url"`
	PostedAt     *time.Time `json:"posted_at,omitempty" db:"posted_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	DiscoveredAt time.Time  `json:"discovered_at" db:"discovered_at"`
	IsNew        bool       `json:"is_new" db:"is_new"`
	IsFavorite   bool       `json:"is_favorite" db:"is_favorite"`
}

// ItemFields carries the mutable fields compared during upsert change detection.
type ItemFields struct {
	Title        string
	ThumbnailURL string
	FullImageURL string
	PageURL      string
	PostedAt     *time.Time
	UpdatedAt    *time.Time
}

// Differs reports whether any mutable field drifted from the stored item.
func (f ItemFields) Differs(stored Item) bool {
	if f.Title != stored.Title ||
		f.ThumbnailURL != stored.ThumbnailURL ||
		f.FullImageURL != stored.FullImageURL ||
		f.PageURL != stored.PageURL {
		return true
	}
	return !timePtrEqual(f.PostedAt, stored.PostedAt) || !timePtrEqual(f.UpdatedAt, stored.UpdatedAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	CreatorID     *uuid.UUID
	NewOnly       bool
	FavoritesOnly bool
}

// UpsertResult reports what an item upsert did.
type UpsertResult struct {
	Item       Item `json:"item"`
	IsNew      bool `json:"is_new"`
	WasUpdated bool `json:"was_updated"`
}

// UpsertOptions control insert and new-flag policy during upsert.
type UpsertOptions struct {
	// AllowInsert permits creating an item that does not exist yet.
	// Check-only contexts set this false to enforce update-only semantics.
	AllowInsert bool
	// MarkUpdatesAsNew re-raises is_new on an existing item when any mutable
	// field drifted. Suppressed during historical backfills.
	MarkUpdatesAsNew bool
}
