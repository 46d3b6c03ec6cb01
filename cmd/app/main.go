package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/browser"
	"github.com/veleda/arttrack/internal/challenge"
	"github.com/veleda/arttrack/internal/concurrency"
	"github.com/veleda/arttrack/internal/config"
	"github.com/veleda/arttrack/internal/database"
	"github.com/veleda/arttrack/internal/database/postgres"
	"github.com/veleda/arttrack/internal/handler"
	"github.com/veleda/arttrack/internal/notify"
	"github.com/veleda/arttrack/internal/scheduler"
	"github.com/veleda/arttrack/internal/scrape"
	"github.com/veleda/arttrack/internal/server"
	"github.com/veleda/arttrack/internal/sync"
	"github.com/veleda/arttrack/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultMaxConns, time.Hour)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	creators := postgres.NewCreatorRepository(pool)
	items := postgres.NewItemRepository(pool)

	// Single shared browser process, launched on first use
	sessions := browser.NewManager(browser.Config{
		Bin:            cfg.BrowserBin,
		CacheDir:       cfg.BrowserCacheDir,
		Headless:       cfg.BrowserHeadless,
		InstallTimeout: cfg.BrowserInstallTimeout,
	})
	sessions.InstallExitHook()
	defer sessions.Shutdown()

	waiter := challenge.NewWaiter(cfg.ChallengePollInterval, challenge.RealClock())
	gate := concurrency.NewRateGate(cfg.RequestMinInterval)

	// Full-budget fetcher for scrapes, tighter budget for existence checks
	fetcher := scrape.NewBrowserFetcher(sessions, waiter, gate, cfg.GalleryBaseURL, cfg.NavigationTimeout, cfg.ChallengeBudgetFull)
	checkFetcher := fetcher.WithBudget(cfg.ChallengeBudgetCheck)

	extractor := scrape.NewExtractor(fetcher, fetcher, cfg.PageDelay)
	checker := scrape.NewExtractor(checkFetcher, nil, cfg.PageDelay)

	notifiers := buildNotifiers(cfg)

	syncService := sync.NewService(sync.Dependencies{
		Creators:  creators,
		Items:     items,
		Extractor: extractor,
		Checker:   checker,
		Following: fetcher,
		Meta:      fetcher,
		Notifiers: notifiers,
	}, sync.Config{
		CreatorDelay: cfg.CreatorDelay,
	})

	workerPool := worker.NewPool(1, 16)
	workerPool.Start()
	defer workerPool.Stop()

	sched := scheduler.New(workerPool)
	defer sched.Stop()
	scheduleAccountSyncs(cfg, syncService, sched)

	srv := server.NewServer(cfg.Port, cfg.APIKey, pool, creators, items, syncService)

	// Serve until interrupted, then drain
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// buildNotifiers assembles the configured notification channels
func buildNotifiers(cfg *config.Config) []sync.Notifier {
	var notifiers []sync.Notifier

	if cfg.NotifyWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.NotifyWebhookURL))
	}

	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			slog.Error("Failed to create Discord session, skipping notifier", "error", err)
		} else {
			notifiers = append(notifiers, notify.NewDiscordNotifier(session, cfg.DiscordChannelID))
		}
	}

	return notifiers
}

// scheduleAccountSyncs registers one periodic sync job per configured account
func scheduleAccountSyncs(cfg *config.Config, service sync.Service, sched *scheduler.Scheduler) {
	for _, raw := range cfg.SyncAccounts {
		accountID, err := uuid.Parse(raw)
		if err != nil {
			slog.Warn("Skipping malformed account id in SYNC_ACCOUNTS", "value", raw)
			continue
		}
		sched.Schedule(cfg.SyncInterval, worker.NewAccountSyncJob(service, accountID))
		slog.Info("Scheduled periodic sync", "account", accountID, "interval", cfg.SyncInterval)
	}
}
