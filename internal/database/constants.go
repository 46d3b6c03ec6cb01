package database

// Error message formats for pool construction
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string: %w"
	ErrMsgFailedToCreatePool      = "failed to create connection pool: %w"
	ErrMsgFailedToPing            = "failed to ping database: %w"
)

// Pool defaults
const (
	DefaultMaxConns = 10
)
