package postgres

// Error message formats. Tests reference these to stay in sync with wrapping.
const (
	ErrFmtQueryCreators     = "failed to query creators: %w"
	ErrFmtInsertCreator     = "failed to insert creator %q: %w"
	ErrFmtUpdateCreator     = "failed to update creator %s: %w"
	ErrFmtDeleteCreator     = "failed to delete creator %s: %w"
	ErrFmtDeleteAllCreators = "failed to delete creators for account %s: %w"

	ErrFmtQueryItems     = "failed to query items: %w"
	ErrFmtQueryKnownIDs  = "failed to query known native ids: %w"
	ErrFmtInsertItem     = "failed to insert item %q: %w"
	ErrFmtUpdateItem     = "failed to update item %q: %w"
	ErrFmtMarkSeen       = "failed to mark item %s seen: %w"
	ErrFmtMarkAllSeen    = "failed to mark items seen: %w"
	ErrFmtToggleFavorite = "failed to toggle favorite on item %s: %w"
	ErrFmtCountNew       = "failed to count new items: %w"
)
