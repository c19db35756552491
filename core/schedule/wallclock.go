package schedule

import (
	"sync"
	"time"
)

// WallClock schedules callbacks on real time.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

func (WallClock) AfterFunc(d time.Duration, f func()) Handle {
	return &wallTimer{timer: time.AfterFunc(d, f)}
}

func (WallClock) Every(d time.Duration, f func()) Handle {
	ticker := &wallTicker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go ticker.run(f)
	return ticker
}

type wallTimer struct {
	timer *time.Timer
}

func (t *wallTimer) Cancel() { t.timer.Stop() }

type wallTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *wallTicker) run(f func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// A tick and a cancellation can be ready together.
			select {
			case <-t.done:
				return
			default:
			}
			f()
		}
	}
}

func (t *wallTicker) Cancel() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
