package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
)

// Item defines the account-scoped persistence contract for artwork items.
type Item interface {
	// GetItems lists items for the account, narrowed by the filter
	GetItems(ctx context.Context, accountID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error)

	// GetItemByNaturalKey fetches by (account, creator, native id)
	GetItemByNaturalKey(ctx context.Context, accountID, creatorID uuid.UUID, nativeID string) (*domain.Item, error)

	// GetKnownNativeIDs returns every stored native id for the creator,
	// newest first. Feeds the stop-on-known-id walk.
	GetKnownNativeIDs(ctx context.Context, accountID, creatorID uuid.UUID) ([]string, error)

	// GetLatestItem returns the most recent item by publish timestamp,
	// falling back to discovery timestamp. Nil when the creator has no items.
	GetLatestItem(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.Item, error)

	// UpsertItem applies the change-detection policy. Inserting sets
	// is_new=true and discovered_at=now; updating compares every mutable
	// field and only writes on drift. Idempotent for identical fields.
	UpsertItem(ctx context.Context, accountID, creatorID uuid.UUID, nativeID string, fields domain.ItemFields, opts domain.UpsertOptions) (*domain.UpsertResult, error)

	// MarkItemSeen clears the is_new flag on one item
	MarkItemSeen(ctx context.Context, accountID, itemID uuid.UUID) error

	// MarkAllSeen clears is_new for the account, optionally scoped to one
	// creator. Returns the number of items cleared.
	MarkAllSeen(ctx context.Context, accountID uuid.UUID, creatorID *uuid.UUID) (int, error)

	// ToggleFavorite flips the favorite flag and returns the new value
	ToggleFavorite(ctx context.Context, accountID, itemID uuid.UUID) (bool, error)

	// CountNew returns how many unseen items the account has
	CountNew(ctx context.Context, accountID uuid.UUID) (int, error)
}
