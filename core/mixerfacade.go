package director

import (
	"context"
	"reflect"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

// audioMix forwards settings to an optional Mixer. Nil and typed-nil mixers
// are treated as unconfigured and every call becomes a no-op, so a director
// can run headless.
type audioMix struct {
	mixer Mixer
}

func (a *audioMix) Set(mixer Mixer) {
	if isNilMixer(mixer) {
		a.mixer = nil
		return
	}
	a.mixer = mixer
}

func (a *audioMix) isConfigured() bool {
	return a != nil && a.mixer != nil
}

func (a *audioMix) Start(ctx context.Context) error {
	if !a.isConfigured() {
		return nil
	}
	return a.mixer.Start(ctx)
}

func (a *audioMix) Stop() {
	if a.isConfigured() {
		a.mixer.Stop()
	}
}

func (a *audioMix) SetAmbience(ctx context.Context, track events.AmbienceTrack) {
	if a.isConfigured() {
		a.mixer.SetAmbience(ctx, track)
	}
}

func (a *audioMix) PlaySfx(ctx context.Context, name events.SfxName) {
	if a.isConfigured() {
		a.mixer.PlaySfx(ctx, name)
	}
}

func (a *audioMix) SetVolumes(agents, ambience, sfx float64) {
	if a.isConfigured() {
		a.mixer.SetVolumes(agents, ambience, sfx)
	}
}

func (a *audioMix) SetAgentMuted(agentID string, muted bool) {
	if a.isConfigured() {
		a.mixer.SetAgentMuted(agentID, muted)
	}
}

func (a *audioMix) SetSoloAgent(agentID string) {
	if a.isConfigured() {
		a.mixer.SetSoloAgent(agentID)
	}
}

func (a *audioMix) SetAgentGain(agentID string, value float64) {
	if a.isConfigured() {
		a.mixer.SetAgentGain(agentID, value)
	}
}

func (a *audioMix) AttachAgent(agentID string) error {
	if !a.isConfigured() {
		return nil
	}
	return a.mixer.AttachAgent(agentID)
}

func (a *audioMix) DetachAgent(agentID string) error {
	if !a.isConfigured() {
		return nil
	}
	return a.mixer.DetachAgent(agentID)
}

func isNilMixer(mixer Mixer) bool {
	if mixer == nil {
		return true
	}

	value := reflect.ValueOf(mixer)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return value.IsNil()
	default:
		return false
	}
}
