package handler

// Generic HTTP error messages for client responses. These intentionally do
// not expose internal error details; handlers and tests both reference them.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidUUIDParam      = "Invalid %s parameter"

	ErrMsgCreatorNotFoundHTTP = "Creator not found"
	ErrMsgItemNotFoundHTTP    = "Item not found"

	ErrMsgListCreatorsFailed  = "Failed to list creators"
	ErrMsgAddCreatorFailed    = "Failed to add creator"
	ErrMsgUpdateCreatorFailed = "Failed to update creator"
	ErrMsgDeleteCreatorFailed = "Failed to delete creator"

	ErrMsgListItemsFailed      = "Failed to list items"
	ErrMsgMarkSeenFailed       = "Failed to mark item seen"
	ErrMsgMarkAllSeenFailed    = "Failed to mark items seen"
	ErrMsgToggleFavoriteFailed = "Failed to toggle favorite"
	ErrMsgCountNewFailed       = "Failed to count new items"

	ErrMsgCheckFailed     = "Failed to check for updates"
	ErrMsgScrapeFailed    = "Failed to scrape creator"
	ErrMsgBatchSyncFailed = "Failed to sync account"
	ErrMsgReconcileFailed = "Failed to reconcile follow list"
	ErrMsgNoFollowedHTTP  = "Remote follow list is empty"

	ErrMsgGenericServerError = "Something went wrong"
)

// Query parameter names
const (
	ParamAccountID = "account_id"
	ParamCreatorID = "creator_id"
	ParamNewOnly   = "new_only"
	ParamFavorites = "favorites"
)
