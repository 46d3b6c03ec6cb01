package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
)

// Creator defines the account-scoped persistence contract for followed creators.
// Cross-account access is rejected at this boundary, not inside the sync engine.
type Creator interface {
	// GetCreators returns every creator followed by the account
	GetCreators(ctx context.Context, accountID uuid.UUID) ([]domain.Creator, error)

	// GetCreatorByID fetches one creator, enforcing account ownership
	GetCreatorByID(ctx context.Context, accountID, creatorID uuid.UUID) (*domain.Creator, error)

	// GetCreatorByUsername fetches by the per-account natural key
	GetCreatorByUsername(ctx context.Context, accountID uuid.UUID, username string) (*domain.Creator, error)

	// AddCreator inserts a new followed creator and returns it with generated fields
	AddCreator(ctx context.Context, creator domain.Creator) (*domain.Creator, error)

	// UpdateCreator applies the non-nil fields of the update
	UpdateCreator(ctx context.Context, accountID, creatorID uuid.UUID, update domain.CreatorUpdate) error

	// DeleteCreator removes a creator, cascading to all of its items
	DeleteCreator(ctx context.Context, accountID, creatorID uuid.UUID) error

	// DeleteAllCreators wipes every creator for the account (clear-and-replace
	// reconciliation). Returns the number removed.
	DeleteAllCreators(ctx context.Context, accountID uuid.UUID) (int, error)
}
