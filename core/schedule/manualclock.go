package schedule

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a virtual clock. Callbacks run synchronously, in due-time
// order, on the goroutine calling Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

type manualTimer struct {
	clock    *ManualClock
	due      time.Time
	period   time.Duration
	seq      int
	f        func()
	canceled bool
}

func (t *manualTimer) Cancel() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.canceled = true
	t.clock.removeLocked(t)
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Handle {
	return c.schedule(d, 0, f)
}

func (c *ManualClock) Every(d time.Duration, f func()) Handle {
	if d <= 0 {
		d = time.Nanosecond
	}
	return c.schedule(d, d, f)
}

func (c *ManualClock) schedule(d, period time.Duration, f func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	timer := &manualTimer{clock: c, due: c.now.Add(max(0, d)), period: period, seq: c.seq, f: f}
	c.timers = append(c.timers, timer)
	return timer
}

// Advance moves virtual time forward by d, running every callback that
// becomes due on the way, including ones scheduled by earlier callbacks.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}

		c.now = next.due
		if next.period > 0 {
			c.seq++
			next.seq = c.seq
			next.due = next.due.Add(next.period)
		} else {
			c.removeLocked(next)
		}
		c.mu.Unlock()

		next.f()
	}
}

// Pending reports how many callbacks are still scheduled.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) nextDueLocked(target time.Time) *manualTimer {
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due.Equal(c.timers[j].due) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].due.Before(c.timers[j].due)
	})

	for _, timer := range c.timers {
		if timer.canceled {
			continue
		}
		if timer.due.After(target) {
			return nil
		}
		return timer
	}
	return nil
}

func (c *ManualClock) removeLocked(timer *manualTimer) {
	for i, candidate := range c.timers {
		if candidate == timer {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
