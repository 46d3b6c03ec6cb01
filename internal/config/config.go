package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	APIKey      string

	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Browser
	BrowserBin            string
	BrowserCacheDir       string
	BrowserHeadless       bool
	BrowserInstallTimeout time.Duration

	// Gallery source
	GalleryBaseURL     string
	NavigationTimeout  time.Duration
	PageDelay          time.Duration
	CreatorDelay       time.Duration
	RequestMinInterval time.Duration

	// Challenge waiting
	ChallengePollInterval time.Duration
	ChallengeBudgetFull   time.Duration
	ChallengeBudgetCheck  time.Duration

	// Scheduling
	SyncInterval time.Duration
	SyncAccounts []string

	// Notifications
	NotifyWebhookURL string
	DiscordToken     string
	DiscordChannelID string
}

// Load reads configuration from environment variables, consulting .env when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(LogMsgNoEnvFile)
	}

	port, err := strconv.Atoi(getEnv(EnvPort, DefaultPort))
	if err != nil {
		return nil, fmt.Errorf(ErrFmtInvalidPort, err)
	}

	cfg := &Config{
		Port:        port,
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		APIKey:      os.Getenv(EnvAPIKey),

		DBUser:     getEnv(EnvDBUser, DefaultDBUser),
		DBPassword: getEnv(EnvDBPassword, ""),
		DBHost:     getEnv(EnvDBHost, DefaultDBHost),
		DBPort:     getEnv(EnvDBPort, DefaultDBPort),
		DBName:     getEnv(EnvDBName, DefaultDBName),

		BrowserBin:            os.Getenv(EnvBrowserBin),
		BrowserCacheDir:       os.Getenv(EnvBrowserCacheDir),
		BrowserHeadless:       getEnvBool(EnvBrowserHeadless, true),
		BrowserInstallTimeout: getEnvDuration(EnvBrowserInstallTimeout, DefaultBrowserInstallTimeout),

		GalleryBaseURL:     getEnv(EnvGalleryBaseURL, DefaultGalleryBaseURL),
		NavigationTimeout:  getEnvDuration(EnvNavigationTimeout, DefaultNavigationTimeout),
		PageDelay:          getEnvDuration(EnvPageDelay, DefaultPageDelay),
		CreatorDelay:       getEnvDuration(EnvCreatorDelay, DefaultCreatorDelay),
		RequestMinInterval: getEnvDuration(EnvRequestMinInterval, DefaultRequestMinInterval),

		ChallengePollInterval: getEnvDuration(EnvChallengePollInterval, DefaultChallengePollInterval),
		ChallengeBudgetFull:   getEnvDuration(EnvChallengeBudgetFull, DefaultChallengeBudgetFull),
		ChallengeBudgetCheck:  getEnvDuration(EnvChallengeBudgetCheck, DefaultChallengeBudgetCheck),

		SyncInterval: getEnvDuration(EnvSyncInterval, DefaultSyncInterval),
		SyncAccounts: getEnvList(EnvSyncAccounts),

		NotifyWebhookURL: os.Getenv(EnvNotifyWebhookURL),
		DiscordToken:     os.Getenv(EnvDiscordToken),
		DiscordChannelID: os.Getenv(EnvDiscordChannelID),
	}

	return cfg, nil
}

// GetDBConnString builds a postgres connection string from the DB settings
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// getEnv returns the value of the environment variable or a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvList parses a comma-separated environment variable into trimmed values
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvBool parses a boolean environment variable, returning fallback on absence or parse failure
func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn(LogMsgInvalidBoolEnv, "key", key, "value", value)
		return fallback
	}
	return parsed
}

// getEnvDuration parses a duration environment variable, returning fallback on absence or parse failure
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn(LogMsgInvalidDurationEnv, "key", key, "value", value)
		return fallback
	}
	return parsed
}
