package scrape

// Log message constants
const (
	LogMsgStoppedAtKnownID  = "stopped extraction at known item"
	LogMsgFallbackToProfile = "first page empty, trying embedded profile state"
	LogMsgStrategyHit       = "embedded state strategy matched"
	LogMsgDroppedKeyless    = "dropped record without native id"
	LogMsgNavigate          = "navigating"
)

// URL path formats relative to the gallery base URL
const (
	GalleryPagePathFmt = "/api/users/%s/artworks?page=%d"
	ProfilePathFmt     = "/%s"
	FollowingPathFmt   = "/api/users/%s/following"
)
