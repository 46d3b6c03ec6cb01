// Package memstore provides an in-memory implementation of the repository
// contracts. It backs unit tests and mirrors the postgres implementation's
// semantics exactly, so engine code cannot tell them apart.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
)

// Store implements repository.Creator and repository.Item in memory.
type Store struct {
	mu       sync.RWMutex
	creators map[uuid.UUID]domain.Creator
	items    map[uuid.UUID]domain.Item

	// now is replaced in tests that need deterministic timestamps
	now func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		creators: make(map[uuid.UUID]domain.Creator),
		items:    make(map[uuid.UUID]domain.Item),
		now:      time.Now,
	}
}

// SetClock overrides the store's time source
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// GetCreators returns every creator followed by the account
func (s *Store) GetCreators(_ context.Context, accountID uuid.UUID) ([]domain.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Creator
	for _, c := range s.creators {
		if c.AccountID == accountID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// GetCreatorByID fetches one creator, enforcing account ownership
func (s *Store) GetCreatorByID(_ context.Context, accountID, creatorID uuid.UUID) (*domain.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.creators[creatorID]
	if !ok || c.AccountID != accountID {
		return nil, domain.ErrCreatorNotFound
	}
	return &c, nil
}

// GetCreatorByUsername fetches by the per-account natural key, case-insensitively
func (s *Store) GetCreatorByUsername(_ context.Context, accountID uuid.UUID, username string) (*domain.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.creators {
		if c.AccountID == accountID && strings.EqualFold(c.Username, username) {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrCreatorNotFound
}

// AddCreator inserts a new followed creator
func (s *Store) AddCreator(_ context.Context, creator domain.Creator) (*domain.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creator.ID = uuid.New()
	creator.CreatedAt = s.now()
	s.creators[creator.ID] = creator
	return &creator, nil
}

// UpdateCreator applies the non-nil fields of the update
func (s *Store) UpdateCreator(_ context.Context, accountID, creatorID uuid.UUID, update domain.CreatorUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creators[creatorID]
	if !ok || c.AccountID != accountID {
		return domain.ErrCreatorNotFound
	}
	if update.DisplayName != nil {
		c.DisplayName = *update.DisplayName
	}
	if update.AvatarURL != nil {
		c.AvatarURL = *update.AvatarURL
	}
	if update.LastChecked != nil {
		t := *update.LastChecked
		c.LastChecked = &t
	}
	s.creators[creatorID] = c
	return nil
}

// DeleteCreator removes a creator and cascades to its items
func (s *Store) DeleteCreator(_ context.Context, accountID, creatorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creators[creatorID]
	if !ok || c.AccountID != accountID {
		return domain.ErrCreatorNotFound
	}
	delete(s.creators, creatorID)
	for id, it := range s.items {
		if it.CreatorID == creatorID {
			delete(s.items, id)
		}
	}
	return nil
}

// DeleteAllCreators wipes every creator for the account, cascading items
func (s *Store) DeleteAllCreators(ctx context.Context, accountID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.creators {
		if c.AccountID != accountID {
			continue
		}
		delete(s.creators, id)
		removed++
		for itemID, it := range s.items {
			if it.CreatorID == id {
				delete(s.items, itemID)
			}
		}
	}
	return removed, nil
}

// GetItems lists items for the account, narrowed by the filter
func (s *Store) GetItems(_ context.Context, accountID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Item
	for _, it := range s.items {
		if it.AccountID != accountID {
			continue
		}
		if filter.CreatorID != nil && it.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.NewOnly && !it.IsNew {
			continue
		}
		if filter.FavoritesOnly && !it.IsFavorite {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return recency(out[i]).After(recency(out[j]))
	})
	return out, nil
}

// GetItemByNaturalKey fetches by (account, creator, native id)
func (s *Store) GetItemByNaturalKey(_ context.Context, accountID, creatorID uuid.UUID, nativeID string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.findByNaturalKey(accountID, creatorID, nativeID)
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

// GetKnownNativeIDs returns every stored native id for the creator, newest first
func (s *Store) GetKnownNativeIDs(ctx context.Context, accountID, creatorID uuid.UUID) ([]string, error) {
	items, err := s.GetItems(ctx, accountID, domain.ItemFilter{CreatorID: &creatorID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.NativeID
	}
	return ids, nil
}

// GetLatestItem returns the most recent item by publish timestamp, falling
// back to discovery timestamp
func (s *Store) GetLatestItem(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.Item, error) {
	items, err := s.GetItems(ctx, accountID, domain.ItemFilter{CreatorID: &creatorID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// UpsertItem applies the change-detection policy described on repository.Item
func (s *Store) UpsertItem(_ context.Context, accountID, creatorID uuid.UUID, nativeID string, fields domain.ItemFields, opts domain.UpsertOptions) (*domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.findByNaturalKey(accountID, creatorID, nativeID)
	if !ok {
		if !opts.AllowInsert {
			return nil, domain.ErrItemNotFound
		}
		it := domain.Item{
			ID:           uuid.New(),
			AccountID:    accountID,
			CreatorID:    creatorID,
			NativeID:     nativeID,
			Title:        fields.Title,
			ThumbnailURL: fields.ThumbnailURL,
			FullImageURL: fields.FullImageURL,
			PageURL:      fields.PageURL,
			PostedAt:     fields.PostedAt,
			UpdatedAt:    fields.UpdatedAt,
			DiscoveredAt: s.now(),
			IsNew:        true,
		}
		s.items[it.ID] = it
		return &domain.UpsertResult{Item: it, IsNew: true}, nil
	}

	if !fields.Differs(stored) {
		return &domain.UpsertResult{Item: stored}, nil
	}

	stored.Title = fields.Title
	stored.ThumbnailURL = fields.ThumbnailURL
	stored.FullImageURL = fields.FullImageURL
	stored.PageURL = fields.PageURL
	stored.PostedAt = fields.PostedAt
	stored.UpdatedAt = fields.UpdatedAt
	if opts.MarkUpdatesAsNew {
		stored.IsNew = true
	}
	s.items[stored.ID] = stored
	return &domain.UpsertResult{Item: stored, WasUpdated: true}, nil
}

// MarkItemSeen clears the is_new flag on one item
func (s *Store) MarkItemSeen(_ context.Context, accountID, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok || it.AccountID != accountID {
		return domain.ErrItemNotFound
	}
	it.IsNew = false
	s.items[itemID] = it
	return nil
}

// MarkAllSeen clears is_new for the account, optionally scoped to one creator
func (s *Store) MarkAllSeen(_ context.Context, accountID uuid.UUID, creatorID *uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := 0
	for id, it := range s.items {
		if it.AccountID != accountID || !it.IsNew {
			continue
		}
		if creatorID != nil && it.CreatorID != *creatorID {
			continue
		}
		it.IsNew = false
		s.items[id] = it
		cleared++
	}
	return cleared, nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (s *Store) ToggleFavorite(_ context.Context, accountID, itemID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok || it.AccountID != accountID {
		return false, domain.ErrItemNotFound
	}
	it.IsFavorite = !it.IsFavorite
	s.items[itemID] = it
	return it.IsFavorite, nil
}

// CountNew returns how many unseen items the account has
func (s *Store) CountNew(_ context.Context, accountID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, it := range s.items {
		if it.AccountID == accountID && it.IsNew {
			count++
		}
	}
	return count, nil
}

func (s *Store) findByNaturalKey(accountID, creatorID uuid.UUID, nativeID string) (domain.Item, bool) {
	for _, it := range s.items {
		if it.AccountID == accountID && it.CreatorID == creatorID && it.NativeID == nativeID {
			return it, true
		}
	}
	return domain.Item{}, false
}

func recency(it domain.Item) time.Time {
	if it.PostedAt != nil {
		return *it.PostedAt
	}
	return it.DiscoveredAt
}
