package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/veleda/arttrack/internal/logger"
)

// LaunchError is the fatal, non-retryable failure to obtain a browser.
// The engine never continues silently without one.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMsgLaunchDiagnostic, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match any LaunchError
func (e *LaunchError) Is(target error) bool {
	_, ok := target.(*LaunchError)
	return ok
}

// Config holds browser process settings
type Config struct {
	// Bin overrides executable discovery when set
	Bin string
	// CacheDir is scanned during discovery and used for on-demand installs
	CacheDir string
	// Headless controls whether the browser runs without a window
	Headless bool
	// InstallTimeout bounds the on-demand browser download
	InstallTimeout time.Duration
}

// Manager owns the single shared browser process. The process is created
// lazily on first use and returned to every caller; borrowers acquire pages
// and must close them on every exit path, never the browser itself.
type Manager struct {
	cfg Config

	mu      sync.Mutex
	browser *rod.Browser

	// launch is replaced in tests to avoid spawning a real process
	launch func(ctx context.Context) (*rod.Browser, error)

	shutdownOnce sync.Once
}

// NewManager creates a manager; no browser is started until first use
func NewManager(cfg Config) *Manager {
	m := &Manager{cfg: cfg}
	m.launch = m.launchBrowser
	return m
}

// Browser returns the live shared browser, launching one if none exists or
// the previous process died.
func (m *Manager) Browser(ctx context.Context) (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		if _, err := m.browser.Version(); err == nil {
			return m.browser, nil
		}
		logger.FromContext(ctx).Warn(LogMsgBrowserStale)
		m.browser = nil
	}

	b, err := m.launch(ctx)
	if err != nil {
		return nil, err
	}
	m.browser = b
	return b, nil
}

// NewPage opens a fresh page on the shared browser. The caller owns the page
// and must close it on success, error and cancellation paths alike.
func (m *Manager) NewPage(ctx context.Context) (*rod.Page, error) {
	b, err := m.Browser(ctx)
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page.Context(ctx), nil
}

// Shutdown closes the browser process exactly once. Safe to call from
// multiple paths (defer in main, signal handler).
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.browser == nil {
			return
		}
		if err := m.browser.Close(); err != nil {
			slog.Warn("error closing browser", "error", err)
		}
		m.browser = nil
		slog.Info(LogMsgBrowserShutdown)
	})
}

// InstallExitHook closes the browser on SIGINT/SIGTERM. In-flight page
// operations are not unwound gracefully.
func (m *Manager) InstallExitHook() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info(LogMsgSignalReceived)
		m.Shutdown()
		os.Exit(0)
	}()
}

// launchBrowser resolves an executable, installing one on demand when the
// probe chain misses, then launches and connects.
func (m *Manager) launchBrowser(ctx context.Context) (*rod.Browser, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBrowserStarting, "headless", m.cfg.Headless)

	bin, found := ResolveExecutable(DefaultProbes(m.cfg.Bin, m.cfg.CacheDir)...)
	if found {
		log.Info(LogMsgExecutableResolved, "path", bin)
	} else {
		log.Warn(LogMsgExecutableMissing)
		installed, err := m.installBrowser(ctx)
		if err != nil {
			// Last resort: let the launcher attempt its own resolution
			log.Warn("on-demand install failed, deferring to launcher", "error", err)
		} else {
			bin = installed
			log.Info(LogMsgInstallFinished, "path", bin)
		}
	}

	l := launcher.New().Headless(m.cfg.Headless).Leakless(true)
	if bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, &LaunchError{Err: err}
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, &LaunchError{Err: err}
	}

	log.Info(LogMsgBrowserStarted)
	return b, nil
}

// installBrowser downloads a browser build, bounded by the install timeout
func (m *Manager) installBrowser(ctx context.Context) (string, error) {
	installCtx, cancel := context.WithTimeout(ctx, m.cfg.InstallTimeout)
	defer cancel()

	b := launcher.NewBrowser()
	b.Context = installCtx
	if m.cfg.CacheDir != "" {
		b.RootDir = m.cfg.CacheDir
	}
	return b.Get()
}
