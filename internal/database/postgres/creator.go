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

// CreatorRepository is the postgres implementation of repository.Creator
type CreatorRepository struct {
	pool *pgxpool.Pool
}

// NewCreatorRepository creates a postgres-backed creator repository
func NewCreatorRepository(pool *pgxpool.Pool) *CreatorRepository {
	return &CreatorRepository{pool: pool}
}

const creatorColumns = "creator_id, account_id, username, display_name, avatar_url, last_checked, created_at"

// GetCreators returns every creator followed by the account
func (r *CreatorRepository) GetCreators(ctx context.Context, accountID uuid.UUID) ([]domain.Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM creators WHERE account_id = $1 ORDER BY username`, creatorColumns)

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtQueryCreators, err)
	}
	defer rows.Close()

	var creators []domain.Creator
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		creators = append(creators, c)
	}
	return creators, rows.Err()
}

// GetCreatorByID fetches one creator, enforcing account ownership
func (r *CreatorRepository) GetCreatorByID(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM creators WHERE account_id = $1 AND creator_id = $2`, creatorColumns)

	c, err := scanCreator(r.pool.QueryRow(ctx, query, accountID, creatorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCreatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCreatorByUsername fetches by the per-account natural key, case-insensitively
func (r *CreatorRepository) GetCreatorByUsername(ctx context.Context, accountID uuid.UUID, username string) (*domain.Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM creators WHERE account_id = $1 AND LOWER(username) = LOWER($2)`, creatorColumns)

	c, err := scanCreator(r.pool.QueryRow(ctx, query, accountID, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCreatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddCreator inserts a new followed creator
func (r *CreatorRepository) AddCreator(ctx context.Context, creator domain.Creator) (*domain.Creator, error) {
	query := fmt.Sprintf(`
		INSERT INTO creators (account_id, username, display_name, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, creatorColumns)

	c, err := scanCreator(r.pool.QueryRow(ctx, query,
		creator.AccountID, creator.Username, creator.DisplayName, creator.AvatarURL))
	if err != nil {
		return nil, fmt.Errorf(ErrFmtInsertCreator, creator.Username, err)
	}
	return &c, nil
}

// UpdateCreator applies the non-nil fields of the update
func (r *CreatorRepository) UpdateCreator(ctx context.Context, accountID, creatorID uuid.UUID, update domain.CreatorUpdate) error {
	query := `
		UPDATE creators SET
			display_name = COALESCE($3, display_name),
			avatar_url   = COALESCE($4, avatar_url),
			last_checked = COALESCE($5, last_checked)
		WHERE account_id = $1 AND creator_id = $2`

	tag, err := r.pool.Exec(ctx, query, accountID, creatorID,
		update.DisplayName, update.AvatarURL, update.LastChecked)
	if err != nil {
		return fmt.Errorf(ErrFmtUpdateCreator, creatorID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}

// DeleteCreator removes a creator; the items foreign key cascades
func (r *CreatorRepository) DeleteCreator(ctx context.Context, accountID, creatorID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM creators WHERE account_id = $1 AND creator_id = $2`, accountID, creatorID)
	if err != nil {
		return fmt.Errorf(ErrFmtDeleteCreator, creatorID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}

// DeleteAllCreators wipes every creator for the account
func (r *CreatorRepository) DeleteAllCreators(ctx context.Context, accountID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM creators WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, fmt.Errorf(ErrFmtDeleteAllCreators, accountID, err)
	}
	return int(tag.RowsAffected()), nil
}

func scanCreator(row pgx.Row) (domain.Creator, error) {
	var c domain.Creator
	err := row.Scan(&c.ID, &c.AccountID, &c.Username, &c.DisplayName, &c.AvatarURL, &c.LastChecked, &c.CreatedAt)
	return c, err
}
