package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshemin/lockbox/internal/lockout"
	"github.com/dshemin/lockbox/internal/logger"
)

// fakeClock is a mutex-guarded movable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestFreezeSweeper_SweepsExpiredFreezes(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	guard := lockout.NewGuard(lockout.Config{}, logger.Nop(), lockout.WithClock(clock.Now))

	require.True(t, guard.Restore("acc-1", clock.Now().Add(time.Minute)))

	sweeper := NewFreezeSweeper(context.Background(), guard, time.Hour, logger.Nop())

	// Not elapsed yet: nothing to sweep.
	sweeper.sweep()
	assert.False(t, guard.CanAttempt("acc-1").Allowed)

	clock.Advance(2 * time.Minute)
	sweeper.sweep()
	assert.True(t, guard.CanAttempt("acc-1").Allowed)
}

func TestFreezeSweeper_StopsOnContextCancel(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	guard := lockout.NewGuard(lockout.Config{}, logger.Nop(), lockout.WithClock(clock.Now))

	ctx, cancel := context.WithCancel(context.Background())
	sweeper := NewFreezeSweeper(ctx, guard, time.Millisecond, logger.Nop())

	done := make(chan struct{})
	go func() {
		sweeper.loop()
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper loop did not stop after context cancellation")
	}
}

func TestFreezeSweeper_DefaultInterval(t *testing.T) {
	guard := lockout.NewGuard(lockout.Config{}, logger.Nop())

	sweeper := NewFreezeSweeper(context.Background(), guard, 0, logger.Nop())
	assert.Equal(t, DefaultSweepInterval, sweeper.interval)
}
