package output

import (
	"context"
	"time"
)

// SweepLock elects a single sweeper across process instances.
// ok is false when another holder owns key; unlock is nil in that case.
type SweepLock interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}
