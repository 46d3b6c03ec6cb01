package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veleda/arttrack/internal/domain"
)

// ItemRepository is the postgres implementation of repository.Item
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a postgres-backed item repository
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `item_id, account_id, creator_id, native_id, title, thumbnail_url,
	full_image_url, page_url, posted_at, updated_at, discovered_at, is_new, is_favorite`

// GetItems lists items for the account, narrowed by the filter
func (r *ItemRepository) GetItems(ctx context.Context, accountID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE account_id = $1`, itemColumns)
	args := []any{accountID}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		query += fmt.Sprintf(" AND creator_id = $%d", len(args))
	}
	if filter.NewOnly {
		query += " AND is_new"
	}
	if filter.FavoritesOnly {
		query += " AND is_favorite"
	}
	query += " ORDER BY COALESCE(posted_at, discovered_at) DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtQueryItems, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItemByNaturalKey fetches by (account, creator, native id)
func (r *ItemRepository) GetItemByNaturalKey(ctx context.Context, accountID, creatorID uuid.UUID, nativeID string) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items
		WHERE account_id = $1 AND creator_id = $2 AND native_id = $3`, itemColumns)

	it, err := scanItem(r.pool.QueryRow(ctx, query, accountID, creatorID, nativeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetKnownNativeIDs returns every stored native id for the creator, newest first
func (r *ItemRepository) GetKnownNativeIDs(ctx context.Context, accountID, creatorID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT native_id FROM items
		WHERE account_id = $1 AND creator_id = $2
		ORDER BY COALESCE(posted_at, discovered_at) DESC`, accountID, creatorID)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtQueryKnownIDs, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetLatestItem returns the most recent item by publish timestamp, falling
// back to discovery timestamp
func (r *ItemRepository) GetLatestItem(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items
		WHERE account_id = $1 AND creator_id = $2
		ORDER BY COALESCE(posted_at, discovered_at) DESC
		LIMIT 1`, itemColumns)

	it, err := scanItem(r.pool.QueryRow(ctx, query, accountID, creatorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// UpsertItem applies the change-detection policy described on repository.Item.
// Each statement commits independently; callers tolerate a stale last_checked
// after a crash, never lost items.
func (r *ItemRepository) UpsertItem(ctx context.Context, accountID, creatorID uuid.UUID, nativeID string, fields domain.ItemFields, opts domain.UpsertOptions) (*domain.UpsertResult, error) {
	stored, err := r.GetItemByNaturalKey(ctx, accountID, creatorID, nativeID)
	if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
		return nil, err
	}

	if stored == nil {
		if !opts.AllowInsert {
			return nil, domain.ErrItemNotFound
		}
		return r.insertItem(ctx, accountID, creatorID, nativeID, fields)
	}

	if !fields.Differs(*stored) {
		return &domain.UpsertResult{Item: *stored}, nil
	}

	query := fmt.Sprintf(`
		UPDATE items SET
			title = $4, thumbnail_url = $5, full_image_url = $6, page_url = $7,
			posted_at = $8, updated_at = $9,
			is_new = is_new OR $10
		WHERE account_id = $1 AND creator_id = $2 AND native_id = $3
		RETURNING %s`, itemColumns)

	it, err := scanItem(r.pool.QueryRow(ctx, query, accountID, creatorID, nativeID,
		fields.Title, fields.ThumbnailURL, fields.FullImageURL, fields.PageURL,
		fields.PostedAt, fields.UpdatedAt, opts.MarkUpdatesAsNew))
	if err != nil {
		return nil, fmt.Errorf(ErrFmtUpdateItem, nativeID, err)
	}
	return &domain.UpsertResult{Item: it, WasUpdated: true}, nil
}

func (r *ItemRepository) insertItem(ctx context.Context, accountID, creatorID uuid.UUID, nativeID string, fields domain.ItemFields) (*domain.UpsertResult, error) {
	query := fmt.Sprintf(`
		INSERT INTO items (account_id, creator_id, native_id, title, thumbnail_url,
			full_image_url, page_url, posted_at, updated_at, is_new)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		ON CONFLICT (account_id, creator_id, native_id) DO NOTHING
		RETURNING %s`, itemColumns)

	it, err := scanItem(r.pool.QueryRow(ctx, query, accountID, creatorID, nativeID,
		fields.Title, fields.ThumbnailURL, fields.FullImageURL, fields.PageURL,
		fields.PostedAt, fields.UpdatedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost an insert race; the winner's row carries identical fields
		existing, lookupErr := r.GetItemByNaturalKey(ctx, accountID, creatorID, nativeID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &domain.UpsertResult{Item: *existing}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrFmtInsertItem, nativeID, err)
	}
	return &domain.UpsertResult{Item: it, IsNew: true}, nil
}

// MarkItemSeen clears the is_new flag on one item
func (r *ItemRepository) MarkItemSeen(ctx context.Context, accountID, itemID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET is_new = FALSE WHERE account_id = $1 AND item_id = $2`, accountID, itemID)
	if err != nil {
		return fmt.Errorf(ErrFmtMarkSeen, itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// MarkAllSeen clears is_new for the account, optionally scoped to one creator
func (r *ItemRepository) MarkAllSeen(ctx context.Context, accountID uuid.UUID, creatorID *uuid.UUID) (int, error) {
	query := `UPDATE items SET is_new = FALSE WHERE account_id = $1 AND is_new`
	args := []any{accountID}
	if creatorID != nil {
		args = append(args, *creatorID)
		query += " AND creator_id = $2"
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf(ErrFmtMarkAllSeen, err)
	}
	return int(tag.RowsAffected()), nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (r *ItemRepository) ToggleFavorite(ctx context.Context, accountID, itemID uuid.UUID) (bool, error) {
	var favorite bool
	err := r.pool.QueryRow(ctx, `
		UPDATE items SET is_favorite = NOT is_favorite
		WHERE account_id = $1 AND item_id = $2
		RETURNING is_favorite`, accountID, itemID).Scan(&favorite)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrItemNotFound
	}
	if err != nil {
		return false, fmt.Errorf(ErrFmtToggleFavorite, itemID, err)
	}
	return favorite, nil
}

// CountNew returns how many unseen items the account has
func (r *ItemRepository) CountNew(ctx context.Context, accountID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM items WHERE account_id = $1 AND is_new`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf(ErrFmtCountNew, err)
	}
	return count, nil
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.AccountID, &it.CreatorID, &it.NativeID, &it.Title,
		&it.ThumbnailURL, &it.FullImageURL, &it.PageURL, &it.PostedAt, &it.UpdatedAt,
		&it.DiscoveredAt, &it.IsNew, &it.IsFavorite)
	return it, err
}
