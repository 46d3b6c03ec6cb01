package challenge

import (
	"context"
	"strings"
	"time"

	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/metrics"
)

// State is the position of one navigation in the challenge state machine.
type State int

const (
	StateUnknown State = iota
	StateChallenged
	StateCleared
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateChallenged:
		return "challenged"
	case StateCleared:
		return "cleared"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Document exposes the loaded page's title and leading body text for
// signature inspection. The browser-backed implementation lives in the
// scrape package; tests script their own.
type Document interface {
	Snapshot(ctx context.Context) (title, bodyPrefix string, err error)
}

// IsChallenge reports whether a document snapshot matches a known
// anti-bot interstitial signature.
func IsChallenge(title, bodyPrefix string) bool {
	lowerTitle := strings.ToLower(title)
	for _, sig := range titleSignatures {
		if strings.Contains(lowerTitle, sig) {
			return true
		}
	}

	if len(bodyPrefix) > BodyPrefixLen {
		bodyPrefix = bodyPrefix[:BodyPrefixLen]
	}
	lowerBody := strings.ToLower(bodyPrefix)
	for _, sig := range bodySignatures {
		if strings.Contains(lowerBody, sig) {
			return true
		}
	}
	return false
}

// Waiter drives Unknown -> Challenged -> Cleared | TimedOut after a
// navigation. TimedOut is terminal but soft: the caller proceeds and lets
// its empty-result handling apply.
type Waiter struct {
	poll  time.Duration
	clock Clock
}

// NewWaiter creates a waiter polling at the given interval.
func NewWaiter(poll time.Duration, clock Clock) *Waiter {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Waiter{poll: poll, clock: clock}
}

// Await inspects the document and, when challenged, re-polls until the
// challenge clears or the budget elapses. It never blocks longer than the
// budget and never returns an error for a timeout; errors come only from the
// document itself or context cancellation.
func (w *Waiter) Await(ctx context.Context, doc Document, budget time.Duration) (State, error) {
	title, body, err := doc.Snapshot(ctx)
	if err != nil {
		return StateUnknown, err
	}
	if !IsChallenge(title, body) {
		return StateCleared, nil
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgChallengeDetected, "budget", budget)
	metrics.ChallengesDetected.Inc()

	deadline := w.clock.Now().Add(budget)
	for {
		remaining := deadline.Sub(w.clock.Now())
		if remaining <= 0 {
			log.Warn(LogMsgChallengeTimedOut)
			metrics.ChallengeTimeouts.Inc()
			return StateTimedOut, nil
		}

		sleep := w.poll
		if sleep > remaining {
			sleep = remaining
		}
		if err := w.clock.Sleep(ctx, sleep); err != nil {
			return StateChallenged, err
		}

		title, body, err = doc.Snapshot(ctx)
		if err != nil {
			return StateChallenged, err
		}
		if !IsChallenge(title, body) {
			log.Info(LogMsgChallengeCleared)
			return StateCleared, nil
		}
	}
}
