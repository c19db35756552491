// Package mixer drives an audio.Graph from derived session settings: agent
// gain composition with mute and solo, one exclusive ambience bed, one-shot
// effects and a level metering loop.
package mixer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/audio"
	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/schedule"
)

// LevelsCallback receives the metered level of one agent.
type LevelsCallback func(agentID string, level float64)

type Volumes struct {
	Agents   float64
	Ambience float64
	Sfx      float64
}

var DefaultVolumes = Volumes{Agents: 0.9, Ambience: 0.6, Sfx: 0.8}

type agentChannel struct {
	handle audio.ChannelHandle
	meter  audio.Meter
}

type Engine struct {
	graph     audio.Graph
	checker   Checker
	clock     schedule.Clock
	assetsDir string
	fps       int
	onLevels  LevelsCallback

	// meterMu is held while a metering frame reports, so Stop returns only
	// once no frame is in flight.
	meterMu         sync.Mutex
	meterLoop       schedule.Handle
	meterGeneration uint64

	mu              sync.Mutex
	started         bool
	volumes         Volumes
	solo            string
	muted           map[string]bool
	routeGains      map[string]float64
	agents          map[string]*agentChannel
	agentOrder      []string
	ambience        events.AmbienceTrack
	pendingAmbience events.AmbienceTrack
	availability    map[string]bool
	window          []float32
}

type Option func(*Engine)

func WithChecker(checker Checker) Option {
	return func(e *Engine) {
		e.checker = checker
	}
}

func WithClock(clock schedule.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

func WithAssetsDir(dir string) Option {
	return func(e *Engine) {
		e.assetsDir = dir
	}
}

// WithMeterRate sets how many metering frames run per second.
func WithMeterRate(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

func WithLevelsCallback(callback LevelsCallback) Option {
	return func(e *Engine) {
		e.onLevels = callback
	}
}

func WithVolumes(volumes Volumes) Option {
	return func(e *Engine) {
		e.volumes = clampVolumes(volumes)
	}
}

func New(graph audio.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:        graph,
		checker:      FileChecker{},
		clock:        schedule.WallClock{},
		assetsDir:    "assets/audio",
		fps:          60,
		volumes:      DefaultVolumes,
		muted:        map[string]bool{},
		routeGains:   map[string]float64{},
		agents:       map[string]*agentChannel{},
		availability: map[string]bool{},
		window:       make([]float32, audio.MeterWindow),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.graph.SetAmbienceGain(e.volumes.Ambience)
	return e
}

// Start resumes the graph, applies an ambience selection made while stopped
// and starts metering. Starting a started engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return nil
	}
	if err := e.graph.Resume(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to resume audio graph: %w", err)
	}
	e.started = true

	if pending := e.pendingAmbience; pending != "" {
		e.pendingAmbience = ""
		e.setAmbienceLocked(ctx, pending)
	}
	e.mu.Unlock()

	e.startMetering()
	return nil
}

// Stop halts playback and metering. Agent routing is kept, and the current
// ambience becomes the pending selection for the next Start.
func (e *Engine) Stop() {
	e.stopMetering()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return
	}
	e.started = false

	if e.ambience != "" {
		e.pendingAmbience = e.ambience
		e.ambience = ""
	}
	e.graph.StopAmbience()
	if err := e.graph.Suspend(); err != nil {
		logger.Warn("failed to suspend audio graph", "error", err)
	}
}

func (e *Engine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

// Ambience reports the loaded track, or the pending one while stopped.
func (e *Engine) Ambience() events.AmbienceTrack {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return e.ambience
	}
	return e.pendingAmbience
}

// SetAmbience switches the ambience bed. Selecting the loaded track, an
// unknown track or an unavailable asset does nothing.
func (e *Engine) SetAmbience(ctx context.Context, track events.AmbienceTrack) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		e.pendingAmbience = track
		return
	}
	e.setAmbienceLocked(ctx, track)
}

func (e *Engine) setAmbienceLocked(ctx context.Context, track events.AmbienceTrack) {
	if track == e.ambience {
		return
	}

	path, ok := AmbiencePath(e.assetsDir, track)
	if !ok {
		logger.Debug("ignoring unknown ambience track", "track", track)
		return
	}
	if !e.availableLocked(ctx, path) {
		return
	}

	if err := e.graph.LoadAmbience(path); err != nil {
		logger.Warn("failed to load ambience", "track", track, "error", err)
		return
	}
	e.ambience = track
	logger.Debug("ambience switched", "track", track)
}

// PlaySfx starts a one-shot at the current effects volume. It is a no-op
// while stopped or when the asset is unavailable.
func (e *Engine) PlaySfx(ctx context.Context, name events.SfxName) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}

	path := SfxPath(e.assetsDir, name)
	if !e.availableLocked(ctx, path) {
		return
	}
	if err := e.graph.PlayOneShot(path, e.volumes.Sfx); err != nil {
		logger.Warn("failed to play sound effect", "sfx", name, "error", err)
	}
}

func (e *Engine) SetVolumes(agents, ambience, sfx float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.volumes = clampVolumes(Volumes{Agents: agents, Ambience: ambience, Sfx: sfx})
	e.graph.SetAmbienceGain(e.volumes.Ambience)
	e.applyAllGainsLocked()
}

func (e *Engine) Volumes() Volumes {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volumes
}

func (e *Engine) SetAgentMuted(agentID string, muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if muted {
		e.muted[agentID] = true
	} else {
		delete(e.muted, agentID)
	}
	e.applyGainLocked(agentID)
}

// SetSoloAgent solos one agent; an empty id clears the solo. Every agent's
// gain is recomputed.
func (e *Engine) SetSoloAgent(agentID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.solo = agentID
	e.applyAllGainsLocked()
}

// SetAgentGain sets the routing gain of an agent, independent of mute and
// solo. It is remembered for agents attached later.
func (e *Engine) SetAgentGain(agentID string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	value = clamp01(value)
	e.routeGains[agentID] = value
	if ch, ok := e.agents[agentID]; ok {
		if err := e.graph.SetRouteGain(ch.handle, value); err != nil {
			logger.Warn("failed to set agent gain", "agent", agentID, "error", err)
		}
	}
}

// AttachAgent creates the voice channel of an agent. Attaching an agent
// twice is a no-op.
func (e *Engine) AttachAgent(agentID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.agents[agentID]; ok {
		return nil
	}

	handle, err := e.graph.CreateChannel()
	if err != nil {
		return fmt.Errorf("failed to create channel for %s: %w", agentID, err)
	}
	meter, err := e.graph.AttachMeter(handle)
	if err != nil {
		return fmt.Errorf("failed to attach meter for %s: %w", agentID, err)
	}

	e.agents[agentID] = &agentChannel{handle: handle, meter: meter}
	e.agentOrder = append(e.agentOrder, agentID)
	if gain, ok := e.routeGains[agentID]; ok {
		if err := e.graph.SetRouteGain(handle, gain); err != nil {
			logger.Warn("failed to set agent gain", "agent", agentID, "error", err)
		}
	}
	e.applyGainLocked(agentID)
	return nil
}

// DetachAgent removes the voice channel of an agent. Its mute and gain
// preferences are kept for a later attach.
func (e *Engine) DetachAgent(agentID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch, ok := e.agents[agentID]
	if !ok {
		return nil
	}
	delete(e.agents, agentID)
	e.agentOrder = slices.DeleteFunc(e.agentOrder, func(id string) bool { return id == agentID })

	if err := e.graph.RemoveChannel(ch.handle); err != nil {
		return fmt.Errorf("failed to remove channel for %s: %w", agentID, err)
	}
	return nil
}

func (e *Engine) Attached(agentID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.agents[agentID]
	return ok
}

// WriteVoice feeds decoded linear16 voice audio of an attached agent. It is
// the entry point for a voice transport; the director never calls it.
func (e *Engine) WriteVoice(agentID string, pcm []byte) error {
	e.mu.Lock()
	ch, ok := e.agents[agentID]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: agent %s", audio.ErrUnknownChannel, agentID)
	}
	return e.graph.Write(ch.handle, pcm)
}

// EffectiveGain is the gate gain currently applied to an agent.
func (e *Engine) EffectiveGain(agentID string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return effectiveGain(e.volumes.Agents, e.muted[agentID], e.solo, agentID)
}

func effectiveGain(agentVolume float64, muted bool, solo, agentID string) float64 {
	if solo != "" && solo != agentID {
		return 0
	}
	if muted {
		return 0
	}
	return agentVolume
}

func (e *Engine) applyAllGainsLocked() {
	for _, agentID := range e.agentOrder {
		e.applyGainLocked(agentID)
	}
}

func (e *Engine) applyGainLocked(agentID string) {
	ch, ok := e.agents[agentID]
	if !ok {
		return
	}

	gain := effectiveGain(e.volumes.Agents, e.muted[agentID], e.solo, agentID)
	if err := e.graph.SetGain(ch.handle, gain); err != nil {
		logger.Warn("failed to set agent gate gain", "agent", agentID, "error", err)
	}
}

func clamp01(value float64) float64 {
	return max(0, min(1, value))
}

func clampVolumes(volumes Volumes) Volumes {
	return Volumes{
		Agents:   clamp01(volumes.Agents),
		Ambience: clamp01(volumes.Ambience),
		Sfx:      clamp01(volumes.Sfx),
	}
}

func (e *Engine) frameInterval() time.Duration {
	return time.Second / time.Duration(e.fps)
}
