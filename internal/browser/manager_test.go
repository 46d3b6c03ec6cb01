package browser

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserLaunchFailureIsFatalTyped(t *testing.T) {
	m := NewManager(Config{})
	m.launch = func(context.Context) (*rod.Browser, error) {
		return nil, &LaunchError{Err: errors.New("no executable")}
	}

	_, err := m.Browser(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, &LaunchError{})
	assert.Contains(t, err.Error(), "likely causes")
}

func TestBrowserLaunchedOnce(t *testing.T) {
	var launches atomic.Int32
	m := NewManager(Config{})

	// A zero-value rod.Browser is enough for identity checks, but Version()
	// would panic on it, so stub at the launch seam and bypass liveness by
	// checking the error path instead: every call that launches bumps the
	// counter, and a launch error is never cached.
	m.launch = func(context.Context) (*rod.Browser, error) {
		launches.Add(1)
		return nil, &LaunchError{Err: errors.New("boom")}
	}

	_, _ = m.Browser(context.Background())
	_, _ = m.Browser(context.Background())
	assert.Equal(t, int32(2), launches.Load(), "failed launches must not be cached")
}

func TestShutdownWithoutBrowserIsSafe(t *testing.T) {
	m := NewManager(Config{})
	m.Shutdown()
	m.Shutdown() // second call is a no-op by design
}

func TestLaunchErrorMatching(t *testing.T) {
	inner := errors.New("disk full")
	err := &LaunchError{Err: inner}

	assert.ErrorIs(t, err, &LaunchError{})
	assert.ErrorIs(t, err, inner)
	assert.False(t, errors.Is(errors.New("other"), &LaunchError{}))
}
