package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubvenue/internal/infrastructure/lock"
	"clubvenue/internal/ports/input"
)

type countingSweeper struct {
	calls  atomic.Int32
	report input.SweepReport
	err    error
}

func (c *countingSweeper) Sweep(context.Context) (input.SweepReport, error) {
	c.calls.Add(1)
	return c.report, c.err
}

type failingLock struct{}

func (failingLock) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return nil, false, errors.New("redis unreachable")
}

func TestRunOnce(t *testing.T) {
	sweeper := &countingSweeper{report: input.SweepReport{TopicsClosed: 2}}
	s := New(sweeper, lock.NewLocalLock(), time.Minute)

	report, ran, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 2, report.TopicsClosed)
	assert.EqualValues(t, 1, sweeper.calls.Load())
}

func TestRunOnce_LockHeld(t *testing.T) {
	l := lock.NewLocalLock()
	unlock, ok, err := l.TryLock(context.Background(), lockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	defer unlock()

	sweeper := &countingSweeper{}
	_, ran, err := New(sweeper, l, time.Minute).RunOnce(context.Background())

	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, sweeper.calls.Load())
}

func TestRunOnce_LockError(t *testing.T) {
	sweeper := &countingSweeper{}
	_, ran, err := New(sweeper, failingLock{}, time.Minute).RunOnce(context.Background())

	assert.Error(t, err)
	assert.False(t, ran)
	assert.Zero(t, sweeper.calls.Load())
}

func TestRun_SweepsImmediatelyAndStops(t *testing.T) {
	sweeper := &countingSweeper{}
	s := New(sweeper, lock.NewLocalLock(), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
