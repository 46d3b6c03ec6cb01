package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The sync engine uses one lock per
// creator so a scheduled sync overlapping a manual "check now" never runs
// duplicate in-flight extractions for the same creator.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
