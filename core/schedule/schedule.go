// Package schedule provides cancellable one-shot and repeating callbacks
// behind a [Clock], so timelines can run on wall time or on virtual time.
package schedule

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent. On wall time a
// callback that was already firing may still run once, so owners that need a
// hard cut-off must also guard the callback itself.
type Handle interface {
	Cancel()
}

type Clock interface {
	Now() time.Time
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Handle
	// Every runs f every d until cancelled.
	Every(d time.Duration, f func()) Handle
}

// HandleSet collects handles so they can be cancelled together.
type HandleSet struct {
	mu      sync.Mutex
	handles []Handle
}

func (s *HandleSet) Add(handle Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = append(s.handles, handle)
}

// StopAll cancels every collected handle and empties the set.
func (s *HandleSet) StopAll() {
	s.mu.Lock()
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()

	for _, handle := range handles {
		handle.Cancel()
	}
}

func (s *HandleSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}
