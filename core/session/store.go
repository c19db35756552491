package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/jinzhu/copier"
)

// Store owns the session state. It is the only place where the reducer runs,
// and it hands out deep copies so consumers never hold references into live
// state.
type Store struct {
	// dispatchMu serializes reductions together with their notifications so
	// listeners observe snapshots in dispatch order.
	dispatchMu sync.Mutex

	mu           sync.Mutex
	reducer      *Reducer
	state        State
	listeners    map[int]func(State)
	nextListener int
}

func NewStore(reducer *Reducer) *Store {
	if reducer == nil {
		reducer = NewReducer()
	}

	return &Store{
		reducer:   reducer,
		state:     NewState(),
		listeners: map[int]func(State){},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Dispatch reduces the events in order and notifies listeners once with the
// resulting snapshot. Listeners must not dispatch.
func (s *Store) Dispatch(evts ...events.Event) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	for _, event := range evts {
		if event == nil {
			continue
		}
		s.state = s.reducer.Reduce(s.state, event)
		logger.Log(context.Background(), slog.LevelDebug, "event reduced", "kind", string(event.Kind()))
	}
	next := snapshot(s.state)
	listeners := make([]func(State), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot(next))
	}

	return next
}

// Subscribe registers listener for every future dispatch and returns a
// function that removes it.
func (s *Store) Subscribe(listener func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func snapshot(state State) State {
	var copied State
	if err := copier.CopyWithOption(&copied, &state, copier.Option{DeepCopy: true}); err != nil {
		logger.Error("failed to copy session state", "error", err)
		return state
	}
	return copied
}
