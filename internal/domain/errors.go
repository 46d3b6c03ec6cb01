package domain

import "errors"

// Store lookup errors shared by all repository implementations.
var (
	ErrCreatorNotFound = errors.New("creator not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrAccountMismatch = errors.New("resource belongs to a different account")
)
