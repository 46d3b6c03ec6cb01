package notify

import "time"

const (
	ChannelWebhook = "webhook"
	ChannelDiscord = "discord"
)

const (
	// DefaultTimeout bounds a single webhook delivery attempt
	DefaultTimeout = 10 * time.Second

	// MaxEmbedItems caps how many items one Discord embed lists
	MaxEmbedItems = 10
)

// Error message formats
const (
	ErrFmtWebhookStatus  = "webhook returned status %d"
	ErrFmtWebhookRequest = "webhook request failed: %w"
	ErrFmtDiscordSend    = "discord message send failed: %w"
)
