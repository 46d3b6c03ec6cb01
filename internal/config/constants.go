package config

import "time"

// Environment variable names
const (
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvServiceName = "SERVICE_NAME"
	EnvVersion     = "VERSION"
	EnvEnvironment = "ENVIRONMENT"
	EnvAPIKey      = "API_KEY"

	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBName     = "DB_NAME"

	EnvBrowserBin            = "BROWSER_BIN"
	EnvBrowserCacheDir       = "BROWSER_CACHE_DIR"
	EnvBrowserHeadless       = "BROWSER_HEADLESS"
	EnvBrowserInstallTimeout = "BROWSER_INSTALL_TIMEOUT"

	EnvGalleryBaseURL     = "GALLERY_BASE_URL"
	EnvNavigationTimeout  = "NAVIGATION_TIMEOUT"
	EnvPageDelay          = "PAGE_DELAY"
	EnvCreatorDelay       = "CREATOR_DELAY"
	EnvRequestMinInterval = "REQUEST_MIN_INTERVAL"

	EnvChallengePollInterval = "CHALLENGE_POLL_INTERVAL"
	EnvChallengeBudgetFull   = "CHALLENGE_BUDGET_FULL"
	EnvChallengeBudgetCheck  = "CHALLENGE_BUDGET_CHECK"

	EnvSyncInterval = "SYNC_INTERVAL"
	EnvSyncAccounts = "SYNC_ACCOUNTS"

	EnvNotifyWebhookURL = "NOTIFY_WEBHOOK_URL"
	EnvDiscordToken     = "DISCORD_TOKEN"
	EnvDiscordChannelID = "DISCORD_CHANNEL_ID"
)

// Default values
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "arttrack"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBUser = "postgres"
	DefaultDBHost = "localhost"
	DefaultDBPort = "5432"
	DefaultDBName = "arttrack"

	DefaultGalleryBaseURL = "https://www.artgallery.example"

	DefaultBrowserInstallTimeout = 10 * time.Minute
	DefaultNavigationTimeout     = 45 * time.Second
	DefaultPageDelay             = 750 * time.Millisecond
	DefaultCreatorDelay          = 2 * time.Second
	DefaultRequestMinInterval    = 500 * time.Millisecond
	DefaultChallengePollInterval = 2 * time.Second
	DefaultChallengeBudgetFull   = 90 * time.Second
	DefaultChallengeBudgetCheck  = 30 * time.Second
	DefaultSyncInterval          = 30 * time.Minute
)

// Error and log message constants
const (
	ErrFmtInvalidPort        = "invalid PORT value: %w"
	LogMsgNoEnvFile          = "no .env file found"
	LogMsgInvalidBoolEnv     = "invalid boolean environment value, using default"
	LogMsgInvalidDurationEnv = "invalid duration environment value, using default"
)
