package scoreboard

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// countdown drives one of the scoreboard clocks. Remaining time is derived
// from the elapsed wall time, so a late or dropped tick never loses time.
// start and stop must be called with lock held; ticks take lock themselves.
type countdown struct {
	clock    clockwork.Clock
	interval time.Duration
	unit     time.Duration
	lock     sync.Locker

	cancel  context.CancelFunc
	started time.Time
	from    int
}

func newCountdown(clock clockwork.Clock, lock sync.Locker, interval, unit time.Duration) *countdown {
	return &countdown{clock: clock, lock: lock, interval: interval, unit: unit}
}

func (c *countdown) running() bool {
	return c.cancel != nil
}

// start counts down from the given value, calling tick with the remaining
// units after every interval until tick returns false
func (c *countdown) start(ctx context.Context, from int, tick func(ctx context.Context, remaining int) bool) {
	c.stop()

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.started = c.clock.Now()
	c.from = from
	ticker := c.clock.NewTicker(c.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
			}

			c.lock.Lock()
			if ctx.Err() != nil {
				c.lock.Unlock()
				return
			}
			more := tick(ctx, c.remaining())
			if !more {
				c.cancel = nil
				cancel()
			}
			c.lock.Unlock()
			if !more {
				return
			}
		}
	}()
}

func (c *countdown) remaining() int {
	left := c.from - int(c.clock.Since(c.started)/c.unit)
	return max(left, 0)
}

// stop halts the countdown and reports the value it had reached
func (c *countdown) stop() (int, bool) {
	if c.cancel == nil {
		return 0, false
	}
	c.cancel()
	c.cancel = nil
	return c.remaining(), true
}
