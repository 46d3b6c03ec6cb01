package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DefaultGalleryBaseURL, cfg.GalleryBaseURL)
	assert.Equal(t, DefaultChallengeBudgetFull, cfg.ChallengeBudgetFull)
	assert.Equal(t, DefaultChallengeBudgetCheck, cfg.ChallengeBudgetCheck)
	assert.True(t, cfg.BrowserHeadless)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvPageDelay, "1s")
	t.Setenv(EnvBrowserHeadless, "false")
	t.Setenv(EnvDBName, "arttrack_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, time.Second, cfg.PageDelay)
	assert.False(t, cfg.BrowserHeadless)
	assert.Contains(t, cfg.GetDBConnString(), "/arttrack_test?sslmode=disable")
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(EnvPageDelay, "not-a-duration")
	t.Setenv(EnvBrowserHeadless, "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPageDelay, cfg.PageDelay)
	assert.True(t, cfg.BrowserHeadless)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "eighty")

	_, err := Load()
	assert.Error(t, err)
}
