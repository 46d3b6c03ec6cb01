package domain

import (
	"time"

	"github.com/google/uuid"
)

// Creator represents a followed content author, owned by a single account.
type Creator struct {
	ID          uuid.UUID  `json:"id" db:"creator_id"`
	AccountID   uuid.UUID  `json:"account_id" db:"account_id"`
	Username    string     `json:"username" db:"username"`
	DisplayName string     `json:"display_name,omitempty" db:"display_name"`
	AvatarURL   string     `json:"avatar_url,omitempty" db:"avatar_url"`
	LastChecked *time.Time `json:"last_checked,omitempty" db:"last_checked"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// CreatorUpdate carries the mutable creator fields. Nil pointers leave the
// stored value untouched.
type CreatorUpdate struct {
	DisplayName *string
	AvatarURL   *string
	LastChecked *time.Time
}
