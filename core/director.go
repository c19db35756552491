// Package director turns a stream of case events into one session state and
// a live audio mix. Events come from a live feed or the scripted rehearsal,
// are reduced into session state, and the derived settings drive the mixer.
package director

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mohammad-Palla/sherlock-game/core/backend"
	"github.com/Mohammad-Palla/sherlock-game/core/eventsource"
	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/session"
)

// levelStep is the smallest metered level change worth a state update.
const levelStep = 0.02

type Director struct {
	store   *session.Store
	source  *eventsource.Source
	mixer   audioMix
	backend Backend

	mode           eventsource.Mode
	sourceOptions  []eventsource.Option
	reducerOptions []session.ReducerOption
	onNotice       func(message string)

	// modeMu serializes Connect and SetMode.
	modeMu sync.Mutex

	// applyMu serializes reduction and the mixer binding, so settings are
	// diffed against the snapshot that was actually applied.
	applyMu sync.Mutex
	applied *Settings
	ctx     context.Context

	levelMu sync.Mutex
	levels  map[string]float64

	closeOnce sync.Once
}

func New(opts ...DirectorOption) (*Director, error) {
	d := &Director{
		mode:   eventsource.ModeScripted,
		ctx:    context.Background(),
		levels: map[string]float64{},
	}
	for _, opt := range opts {
		opt(d)
	}

	d.store = session.NewStore(session.NewReducer(d.reducerOptions...))

	sourceOptions := append(slices.Clone(d.sourceOptions), eventsource.WithFeedLostCallback(d.handleFeedLost))
	source, err := eventsource.New(d.mode, d.handleEvent, sourceOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create event source: %w", err)
	}
	d.source = source
	return d, nil
}

// Snapshot returns a copy of the current session state.
func (d *Director) Snapshot() session.State {
	return d.store.Snapshot()
}

// Subscribe registers a consumer for every state change. Consumers must
// not call back into the director.
func (d *Director) Subscribe(listener func(session.State)) (unsubscribe func()) {
	return d.store.Subscribe(listener)
}

func (d *Director) Mode() eventsource.Mode {
	return d.source.Mode()
}

// Connect joins the session and starts the event source and mixer. In live
// mode a failed join or feed connection falls back to the scripted
// rehearsal with the mock roster.
func (d *Director) Connect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "connect session")
	defer span.End()

	if err := d.mixer.Start(ctx); err != nil {
		span.RecordError(err)
		logger.Warn("audio mixer unavailable", "error", err)
	}

	mode, err := d.enterMode(ctx, d.mode)
	span.SetAttributes(attribute.String("mode", string(mode)), attribute.String("room", d.source.Room()))
	return err
}

// SetMode switches between the live feed and the rehearsal at runtime. It
// follows the same fallback as Connect, so a live session that cannot be
// reached leaves the rehearsal running. Switching to the running mode is a
// no-op.
func (d *Director) SetMode(ctx context.Context, mode eventsource.Mode) error {
	if _, err := eventsource.ParseMode(string(mode)); err != nil {
		return err
	}
	ctx, span := tracer.Start(ctx, "switch mode", trace.WithAttributes(attribute.String("mode", string(mode))))
	defer span.End()

	_, err := d.enterMode(ctx, mode)
	return err
}

// enterMode joins and starts the source in mode and reports the mode that
// is actually running.
func (d *Director) enterMode(ctx context.Context, mode eventsource.Mode) (eventsource.Mode, error) {
	d.modeMu.Lock()
	defer d.modeMu.Unlock()

	if d.source.Running() && d.source.Mode() == mode {
		return mode, nil
	}

	d.dispatch(events.NewConnectionChanged(events.ConnectionConnecting, d.source.Room()))

	if mode == eventsource.ModeLive {
		err := d.enterLive(ctx)
		if err == nil {
			d.connected(mode)
			return mode, nil
		}
		trace.SpanFromContext(ctx).RecordError(err)
		d.fallBack(err)
	}

	d.useRoster(backend.MockJoinResponse())
	if err := d.startSource(ctx, eventsource.ModeScripted); err != nil {
		d.dispatch(events.NewConnectionChanged(events.ConnectionDisconnected, d.source.Room()))
		return eventsource.ModeScripted, fmt.Errorf("failed to start rehearsal: %w", err)
	}
	d.connected(eventsource.ModeScripted)
	return eventsource.ModeScripted, nil
}

func (d *Director) enterLive(ctx context.Context) error {
	join, err := d.join(ctx)
	if err != nil {
		return err
	}
	d.useRoster(join)
	return d.startSource(ctx, eventsource.ModeLive)
}

func (d *Director) useRoster(join backend.JoinResponse) {
	d.dispatch(events.NewRosterSet(join.Agents...))
	if join.RoomName != "" {
		d.source.SetRoom(join.RoomName)
	}
}

func (d *Director) connected(mode eventsource.Mode) {
	room := d.source.Room()
	d.dispatch(events.NewConnectionChanged(events.ConnectionConnected, room))
	logger.Info("session connected", "mode", mode, "room", room)
}

func (d *Director) join(ctx context.Context) (backend.JoinResponse, error) {
	if d.backend == nil {
		return backend.JoinResponse{}, fmt.Errorf("no session backend configured")
	}
	return d.backend.Join(ctx)
}

func (d *Director) startSource(ctx context.Context, mode eventsource.Mode) error {
	if err := d.source.SetMode(ctx, mode); err != nil {
		return err
	}
	return d.source.Start(ctx)
}

func (d *Director) fallBack(err error) {
	logger.Warn("live session unavailable, falling back to rehearsal", "error", err)
	d.notice("Live session unavailable. Running the rehearsal instead.")
}

// handleFeedLost is called when a live feed drops. The session stays in
// live mode but is marked disconnected.
func (d *Director) handleFeedLost(err error) {
	logger.Warn("live session disconnected", "error", err)
	d.dispatch(events.NewConnectionChanged(events.ConnectionDisconnected, d.source.Room()))
	d.notice("Lost connection to the live session.")
}

// Close stops the event source and the mixer. It is safe to call more than
// once.
func (d *Director) Close() {
	d.closeOnce.Do(func() {
		d.source.Stop()
		d.mixer.Stop()
		d.dispatch(events.NewConnectionChanged(events.ConnectionDisconnected, ""))
	})
}

// handleEvent receives every event the source emits.
func (d *Director) handleEvent(event events.Event) {
	d.dispatch(event)
}

// dispatch reduces events and brings the mixer in line with the new state.
// Queued sound cues are played and consumed exactly once.
func (d *Director) dispatch(evts ...events.Event) session.State {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	state := d.store.Dispatch(evts...)

	settings := Project(state)
	d.applySettings(d.ctx, d.applied, settings)
	d.applied = &settings

	if consumed := d.playQueuedSfx(d.ctx, state.SfxQueue); len(consumed) > 0 {
		state = d.store.Dispatch(consumed...)
	}
	return state
}

// ReportLevel records a metered agent level. Small changes are dropped so
// metering does not flood consumers.
func (d *Director) ReportLevel(agentID string, level float64) {
	d.levelMu.Lock()
	last := d.levels[agentID]
	if math.Abs(level-last) < levelStep && (level != 0 || last == 0) {
		d.levelMu.Unlock()
		return
	}
	d.levels[agentID] = level
	d.levelMu.Unlock()

	d.dispatch(events.NewAgentSpeaking(agentID, level))
}

func (d *Director) notice(message string) {
	if d.onNotice != nil {
		d.onNotice(message)
	}
}
