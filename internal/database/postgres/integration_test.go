package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/arttrack/internal/domain"
)

func createTestAccount(t *testing.T, ctx context.Context) uuid.UUID {
	t.Helper()

	pool := testDB(t)
	var accountID uuid.UUID
	username := fmt.Sprintf("acct-%s", uuid.NewString()[:8])
	err := pool.QueryRow(ctx,
		`INSERT INTO accounts (username) VALUES ($1) RETURNING account_id`, username).Scan(&accountID)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM accounts WHERE account_id = $1`, accountID)
	})
	return accountID
}

func createTestCreator(t *testing.T, ctx context.Context, accountID uuid.UUID) *domain.Creator {
	t.Helper()

	repo := NewCreatorRepository(testDB(t))
	creator, err := repo.AddCreator(ctx, domain.Creator{
		AccountID: accountID,
		Username:  fmt.Sprintf("artist-%s", uuid.NewString()[:8]),
	})
	require.NoError(t, err)
	return creator
}

func TestUpsertItem_InsertThenIdempotent(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	repo := NewItemRepository(testDB(t))

	posted := time.Now().Add(-time.Hour).UTC().Truncate(time.Microsecond)
	fields := domain.ItemFields{
		Title:        "Dawn Study",
		ThumbnailURL: "https://cdn.example/thumb/1.jpg",
		PageURL:      "https://gallery.example/view/1",
		PostedAt:     &posted,
	}
	opts := domain.UpsertOptions{AllowInsert: true}

	first, err := repo.UpsertItem(ctx, accountID, creator.ID, "n-1", fields, opts)
	require.NoError(t, err)
	assert.True(t, first.IsNew)
	assert.False(t, first.WasUpdated)
	assert.True(t, first.Item.IsNew)

	second, err := repo.UpsertItem(ctx, accountID, creator.ID, "n-1", fields, opts)
	require.NoError(t, err)
	assert.False(t, second.IsNew)
	assert.False(t, second.WasUpdated)
	assert.Equal(t, first.Item.DiscoveredAt, second.Item.DiscoveredAt)
}

func TestUpsertItem_ChangeDetectionNewFlagPolicy(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	repo := NewItemRepository(testDB(t))

	fields := domain.ItemFields{Title: "Original", PageURL: "https://gallery.example/view/2"}
	inserted, err := repo.UpsertItem(ctx, accountID, creator.ID, "n-2", fields, domain.UpsertOptions{AllowInsert: true})
	require.NoError(t, err)
	require.NoError(t, repo.MarkItemSeen(ctx, accountID, inserted.Item.ID))

	tests := []struct {
		name        string
		title       string
		markUpdates bool
		wantIsNew   bool
	}{
		{name: "drift without re-raise stays seen", title: "Retitled", markUpdates: false, wantIsNew: false},
		{name: "drift with re-raise resurfaces", title: "Retitled Again", markUpdates: true, wantIsNew: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := fields
			changed.Title = tt.title
			res, err := repo.UpsertItem(ctx, accountID, creator.ID, "n-2", changed,
				domain.UpsertOptions{AllowInsert: true, MarkUpdatesAsNew: tt.markUpdates})
			require.NoError(t, err)
			assert.True(t, res.WasUpdated)
			assert.Equal(t, tt.wantIsNew, res.Item.IsNew)
		})
	}
}

func TestUpsertItem_UpdateOnlyRefusesInsert(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	repo := NewItemRepository(testDB(t))

	_, err := repo.UpsertItem(ctx, accountID, creator.ID, "absent", domain.ItemFields{Title: "x"},
		domain.UpsertOptions{AllowInsert: false})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpsertItem_NaturalKeyUniquePerAccount(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	repo := NewItemRepository(testDB(t))
	opts := domain.UpsertOptions{AllowInsert: true}

	_, err := repo.UpsertItem(ctx, accountID, creator.ID, "dup", domain.ItemFields{Title: "a"}, opts)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, accountID, creator.ID, "dup", domain.ItemFields{Title: "a"}, opts)
	require.NoError(t, err)

	items, err := repo.GetItems(ctx, accountID, domain.ItemFilter{CreatorID: &creator.ID})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Same native id under a different account is a distinct item
	otherAccount := createTestAccount(t, ctx)
	otherCreator := createTestCreator(t, ctx, otherAccount)
	_, err = repo.UpsertItem(ctx, otherAccount, otherCreator.ID, "dup", domain.ItemFields{Title: "a"}, opts)
	require.NoError(t, err)
}

func TestGetLatestItem_PublishFallsBackToDiscovery(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	repo := NewItemRepository(testDB(t))
	opts := domain.UpsertOptions{AllowInsert: true}

	old := time.Now().Add(-48 * time.Hour).UTC().Truncate(time.Microsecond)
	_, err := repo.UpsertItem(ctx, accountID, creator.ID, "dated", domain.ItemFields{Title: "old", PostedAt: &old}, opts)
	require.NoError(t, err)

	// No posted_at: discovery timestamp (now) makes it the latest
	undated, err := repo.UpsertItem(ctx, accountID, creator.ID, "undated", domain.ItemFields{Title: "fresh"}, opts)
	require.NoError(t, err)

	latest, err := repo.GetLatestItem(ctx, accountID, creator.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, undated.Item.ID, latest.ID)
}

func TestDeleteCreator_CascadesItems(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	creatorRepo := NewCreatorRepository(testDB(t))
	itemRepo := NewItemRepository(testDB(t))

	_, err := itemRepo.UpsertItem(ctx, accountID, creator.ID, "c-1", domain.ItemFields{Title: "t"},
		domain.UpsertOptions{AllowInsert: true})
	require.NoError(t, err)

	require.NoError(t, creatorRepo.DeleteCreator(ctx, accountID, creator.ID))

	items, err := itemRepo.GetItems(ctx, accountID, domain.ItemFilter{CreatorID: &creator.ID})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSeenFavoriteAndCounts(t *testing.T) {
	ctx := context.Background()
	accountID := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountID)
	repo := NewItemRepository(testDB(t))
	opts := domain.UpsertOptions{AllowInsert: true}

	var firstID uuid.UUID
	for i := 0; i < 3; i++ {
		res, err := repo.UpsertItem(ctx, accountID, creator.ID, fmt.Sprintf("s-%d", i),
			domain.ItemFields{Title: "t"}, opts)
		require.NoError(t, err)
		if i == 0 {
			firstID = res.Item.ID
		}
	}

	count, err := repo.CountNew(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.MarkItemSeen(ctx, accountID, firstID))
	count, err = repo.CountNew(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	cleared, err := repo.MarkAllSeen(ctx, accountID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	fav, err := repo.ToggleFavorite(ctx, accountID, firstID)
	require.NoError(t, err)
	assert.True(t, fav)
	fav, err = repo.ToggleFavorite(ctx, accountID, firstID)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestCreatorAccountScoping(t *testing.T) {
	ctx := context.Background()
	accountA := createTestAccount(t, ctx)
	accountB := createTestAccount(t, ctx)
	creator := createTestCreator(t, ctx, accountA)
	repo := NewCreatorRepository(testDB(t))

	_, err := repo.GetCreatorByID(ctx, accountB, creator.ID)
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)

	err = repo.DeleteCreator(ctx, accountB, creator.ID)
	assert.ErrorIs(t, err, domain.ErrCreatorNotFound)

	found, err := repo.GetCreatorByUsername(ctx, accountA, creator.Username)
	require.NoError(t, err)
	assert.Equal(t, creator.ID, found.ID)
}
