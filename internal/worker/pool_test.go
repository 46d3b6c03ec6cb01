package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/arttrack/internal/domain"
	"github.com/veleda/arttrack/internal/testing/leaktest"
)

type countingJob struct {
	count atomic.Int32
	err   error
	done  chan struct{}
}

func (j *countingJob) Process(context.Context) error {
	j.count.Add(1)
	if j.done != nil {
		j.done <- struct{}{}
	}
	return j.err
}

func TestPoolProcessesJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	job := &countingJob{done: make(chan struct{}, 3)}
	for i := 0; i < 3; i++ {
		pool.Enqueue(job)
	}

	for i := 0; i < 3; i++ {
		select {
		case <-job.done:
		case <-time.After(time.Second):
			t.Fatal("job was not processed in time")
		}
	}
	assert.Equal(t, int32(3), job.count.Load())
}

func TestPoolSurvivesJobFailure(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	failing := &countingJob{err: errors.New("boom"), done: make(chan struct{}, 1)}
	healthy := &countingJob{done: make(chan struct{}, 1)}

	pool.Enqueue(failing)
	pool.Enqueue(healthy)

	for _, done := range []chan struct{}{failing.done, healthy.done} {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job was not processed in time")
		}
	}
	assert.Equal(t, int32(1), healthy.count.Load())
}

type blockingJob struct{ release chan struct{} }

func (j *blockingJob) Process(context.Context) error {
	<-j.release
	return nil
}

func TestPoolTryEnqueueBackpressure(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	release := make(chan struct{})
	blocker := &blockingJob{release: release}

	// First job occupies the worker, second fills the queue
	require.True(t, pool.TryEnqueue(blocker))
	filled := false
	for i := 0; i < 100; i++ {
		if pool.TryEnqueue(blocker) {
			filled = true
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, filled)

	assert.False(t, pool.TryEnqueue(&countingJob{}))

	close(release)
	pool.Stop()
}

func TestPoolStopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, 10)
		pool.Start()

		job := &countingJob{done: make(chan struct{}, 1)}
		pool.Enqueue(job)
		<-job.done

		pool.Stop()
	})
}

type fakeSyncService struct {
	mu       sync.Mutex
	accounts []uuid.UUID
	batch    *domain.BatchResult
	err      error
}

func (f *fakeSyncService) CheckForUpdates(context.Context, uuid.UUID, uuid.UUID) (*domain.CheckResult, error) {
	return nil, nil
}
func (f *fakeSyncService) ScrapeFull(context.Context, uuid.UUID, uuid.UUID) (*domain.ScrapeResult, error) {
	return nil, nil
}
func (f *fakeSyncService) ScrapeIncremental(context.Context, uuid.UUID, uuid.UUID) (*domain.ScrapeResult, error) {
	return nil, nil
}
func (f *fakeSyncService) ReconcileFollowing(context.Context, uuid.UUID, string, bool, bool) (*domain.ReconcileResult, error) {
	return nil, nil
}

func (f *fakeSyncService) ScrapeAllForAccount(_ context.Context, accountID uuid.UUID) (*domain.BatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = append(f.accounts, accountID)
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func TestAccountSyncJob(t *testing.T) {
	accountID := uuid.New()
	svc := &fakeSyncService{batch: &domain.BatchResult{Total: 2, Completed: 1, Skipped: 1}}

	job := NewAccountSyncJob(svc, accountID)
	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, []uuid.UUID{accountID}, svc.accounts)
}

func TestAccountSyncJobPropagatesBatchError(t *testing.T) {
	wantErr := errors.New("store unavailable")
	job := NewAccountSyncJob(&fakeSyncService{err: wantErr}, uuid.New())
	assert.ErrorIs(t, job.Process(context.Background()), wantErr)
}
