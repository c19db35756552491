package director

import (
	"context"

	"github.com/Mohammad-Palla/sherlock-game/core/backend"
	"github.com/Mohammad-Palla/sherlock-game/core/eventsource"
	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/session"
)

type DirectorOption func(*Director)

// Mixer is the audio side of the director. It only ever receives settings
// derived from session state.
type Mixer interface {
	Start(ctx context.Context) error
	Stop()
	SetAmbience(ctx context.Context, track events.AmbienceTrack)
	PlaySfx(ctx context.Context, name events.SfxName)
	SetVolumes(agents, ambience, sfx float64)
	SetAgentMuted(agentID string, muted bool)
	SetSoloAgent(agentID string)
	SetAgentGain(agentID string, value float64)
	AttachAgent(agentID string) error
	DetachAgent(agentID string) error
}

func WithMixer(mixer Mixer) DirectorOption {
	return func(d *Director) {
		d.mixer.Set(mixer)
	}
}

// Backend joins live sessions and receives player actions.
type Backend interface {
	Join(ctx context.Context) (backend.JoinResponse, error)
	SendAction(ctx context.Context, room string, action backend.Action) error
}

func WithBackend(client Backend) DirectorOption {
	return func(d *Director) {
		d.backend = client
	}
}

// WithMode selects the event source the director connects with.
func WithMode(mode eventsource.Mode) DirectorOption {
	return func(d *Director) {
		d.mode = mode
	}
}

func WithSourceOptions(opts ...eventsource.Option) DirectorOption {
	return func(d *Director) {
		d.sourceOptions = append(d.sourceOptions, opts...)
	}
}

func WithReducerOptions(opts ...session.ReducerOption) DirectorOption {
	return func(d *Director) {
		d.reducerOptions = append(d.reducerOptions, opts...)
	}
}

// WithNoticeCallback receives short user-facing messages, e.g. when the
// director falls back to the rehearsal or an action could not be delivered.
func WithNoticeCallback(callback func(message string)) DirectorOption {
	return func(d *Director) {
		d.onNotice = callback
	}
}
