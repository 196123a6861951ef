package lock

import (
	"context"
	"sync"
	"time"

	"clubvenue/internal/ports/output"
)

var _ output.SweepLock = (*LocalLock)(nil)

// LocalLock is the single-instance fallback used when no Redis is configured.
type LocalLock struct {
	mu     sync.Mutex
	held   map[string]uint64
	expiry map[string]time.Time
	seq    uint64
	now    func() time.Time
}

func NewLocalLock() *LocalLock {
	return &LocalLock{
		held:   make(map[string]uint64),
		expiry: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (l *LocalLock) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok && l.now().Before(l.expiry[key]) {
		return nil, false, nil
	}
	l.seq++
	token := l.seq
	l.held[key] = token
	l.expiry[key] = l.now().Add(ttl)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key] == token {
			delete(l.held, key)
			delete(l.expiry, key)
		}
	}, true, nil
}
