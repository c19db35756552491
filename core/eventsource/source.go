// Package eventsource produces the timeline of case events, either from a
// live session feed or from a deterministic rehearsal script.
package eventsource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/schedule"
)

type Mode string

const (
	ModeLive     Mode = "live"
	ModeScripted Mode = "scripted"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLive, ModeScripted:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Handler receives every emitted event in order. Handlers run while the
// source holds its emission lock: they may call MarkDecisionMade but must not
// call Stop, SetMode or StopMockTimer.
type Handler func(events.Event)

// Source emits case events to a single handler.
//
// Every emission is checked against the source generation under the same
// lock Stop uses, so once Stop (or a mode switch) returns no event of the
// previous run reaches the handler.
type Source struct {
	handler Handler
	clock   schedule.Clock
	script  Script
	feed    feedOptions

	onFeedLost func(error)

	emitMu sync.Mutex

	mu           sync.Mutex
	mode         Mode
	running      bool
	generation   uint64
	beats        schedule.HandleSet
	decisionMade bool

	countdown           schedule.Handle
	countdownGeneration uint64
	remaining           int

	conn FeedConn
}

func New(mode Mode, handler Handler, opts ...Option) (*Source, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if handler == nil {
		handler = func(events.Event) {}
	}

	s := &Source{
		mode:    mode,
		handler: handler,
		clock:   schedule.WallClock{},
		script:  RehearsalScript(),
		feed: feedOptions{
			baseURL: "http://localhost:3000",
			dial:    dialWebsocket,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Source) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Source) Room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.room
}

func (s *Source) SetRoom(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed.room = room
}

func (s *Source) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start begins emitting in the current mode. Starting a running source is a
// no-op.
func (s *Source) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.generation++
	generation := s.generation
	mode := s.mode
	s.mu.Unlock()

	var err error
	switch mode {
	case ModeLive:
		err = s.startLive(ctx, generation)
	case ModeScripted:
		s.startScripted(generation)
	}
	if err != nil {
		s.mu.Lock()
		if s.generation == generation {
			s.running = false
		}
		s.mu.Unlock()
	}
	return err
}

// Stop cancels every pending emission and closes the live feed. It is
// idempotent and returns only after any in-flight emission has finished.
func (s *Source) Stop() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	conn := s.stopLocked()
	s.mu.Unlock()

	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Debug("failed to close live feed", "error", err)
		}
	}
}

func (s *Source) stopLocked() FeedConn {
	s.running = false
	s.generation++
	s.beats.StopAll()
	s.stopCountdownLocked()

	conn := s.conn
	s.conn = nil
	return conn
}

// SetMode switches between live and scripted emission. Switching to the
// current mode is a no-op; otherwise the previous mode is fully stopped
// before the new one starts.
func (s *Source) SetMode(ctx context.Context, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.Stop()

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	logger.Info("event source mode changed", "mode", mode)
	return s.Start(ctx)
}

// MarkDecisionMade records that the player acted, which squelches beats
// marked SkipIfDecided. It is safe to call from a handler.
func (s *Source) MarkDecisionMade() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisionMade = true
}

// StopMockTimer halts the scripted countdown without emitting anything.
func (s *Source) StopMockTimer() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCountdownLocked()
}

// Emit delivers events built by build as one batch, provided the source is
// still running the generation it was in when Emit was called. It lets case
// actions resolved locally share the ordering and cut-off of scripted beats.
func (s *Source) Emit(build func() []events.Event) {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	s.fire(func() []events.Event {
		if !s.currentLocked(generation) {
			return nil
		}
		return build()
	})
}

// EmitAfter schedules Emit after d. The emission is dropped if the source
// stops or switches mode first.
func (s *Source) EmitAfter(d time.Duration, build func() []events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	generation := s.generation
	s.beats.Add(s.clock.AfterFunc(d, func() {
		s.fire(func() []events.Event {
			if !s.currentLocked(generation) {
				return nil
			}
			return build()
		})
	}))
}

// PenalizeMockTimer deducts seconds from the scripted countdown and emits
// the penalty followed by the new remaining time. It does nothing when no
// countdown is running.
func (s *Source) PenalizeMockTimer(seconds int) {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	s.fire(func() []events.Event {
		if !s.currentLocked(generation) || s.countdown == nil {
			return nil
		}
		return s.penalizeLocked(seconds)
	})
}

func (s *Source) currentLocked(generation uint64) bool {
	return s.running && s.generation == generation
}

// fire builds a batch under the state lock, stamps it with the source clock
// and hands it to the handler while holding the emission lock.
func (s *Source) fire(build func() []events.Event) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	batch := build()
	now := s.clock.Now()
	s.mu.Unlock()

	for i, event := range batch {
		batch[i] = events.Restamp(event, now)
	}

	for _, event := range batch {
		s.handler(event)
	}
}
