package cache

import (
	"context"
	"sync"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
)

// InMemoryGenerationLock implements asset.GenerationLock for single-process
// deployments and tests. Expired entries are reclaimed on the next Acquire.
type InMemoryGenerationLock struct {
	mu    sync.Mutex
	locks map[string]time.Time // period key -> expiry
}

// NewInMemoryGenerationLock creates an in-process generation lock
func NewInMemoryGenerationLock() *InMemoryGenerationLock {
	return &InMemoryGenerationLock{
		locks: make(map[string]time.Time),
	}
}

func (l *InMemoryGenerationLock) periodKey(periodDate time.Time) string {
	return asset.PeriodOf(periodDate).Format("2006-01")
}

// Acquire attempts to take the run lock for the period
func (l *InMemoryGenerationLock) Acquire(ctx context.Context, periodDate time.Time, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := l.periodKey(periodDate)
	if expiry, held := l.locks[key]; held && time.Now().Before(expiry) {
		return false, nil
	}

	l.locks[key] = time.Now().Add(ttl)
	return true, nil
}

// Release frees the run lock for the period
func (l *InMemoryGenerationLock) Release(ctx context.Context, periodDate time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, l.periodKey(periodDate))
	return nil
}

var _ asset.GenerationLock = (*InMemoryGenerationLock)(nil)
