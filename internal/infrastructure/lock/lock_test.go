package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLock_AcquireAndRelease(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedisLock(db)
	l.newToken = func() string { return "token-1" }

	mock.ExpectSetNX("clubvenue:lock:sweep", "token-1", time.Minute).SetVal(true)
	mock.ExpectEval(releaseScript, []string{"clubvenue:lock:sweep"}, "token-1").SetVal(int64(1))

	unlock, ok, err := l.TryLock(context.Background(), "sweep", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	unlock()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_HeldElsewhere(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedisLock(db)
	l.newToken = func() string { return "token-2" }

	mock.ExpectSetNX("clubvenue:lock:sweep", "token-2", time.Minute).SetVal(false)

	unlock, ok, err := l.TryLock(context.Background(), "sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, unlock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedisLock(db)
	l.newToken = func() string { return "token-3" }

	mock.ExpectSetNX("clubvenue:lock:sweep", "token-3", time.Minute).SetErr(errors.New("connection refused"))

	_, ok, err := l.TryLock(context.Background(), "sweep", time.Minute)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "acquire lock sweep")
}

func TestLocalLock(t *testing.T) {
	l := NewLocalLock()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder while first lease is live")

	_, ok, _ = l.TryLock(ctx, "other", time.Minute)
	assert.True(t, ok, "keys are independent")

	unlock()
	unlock2, ok, _ := l.TryLock(ctx, "sweep", time.Minute)
	require.True(t, ok)

	// an expired lease can be taken over; the stale unlock must not free it
	now = now.Add(2 * time.Minute)
	_, ok, _ = l.TryLock(ctx, "sweep", time.Minute)
	require.True(t, ok)
	unlock2()
	_, ok, _ = l.TryLock(ctx, "sweep", time.Minute)
	assert.False(t, ok)
}

func TestLocalLock_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := NewLocalLock().TryLock(ctx, "sweep", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}
