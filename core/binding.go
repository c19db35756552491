package director

import (
	"context"
	"maps"
	"slices"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/session"
)

// Settings is the part of session state the mixer cares about.
type Settings struct {
	Ambience events.AmbienceTrack
	Volumes  session.Volumes
	Solo     string
	Agents   map[string]AgentSettings
}

type AgentSettings struct {
	Muted bool
	Gain  float64
}

// Project derives mixer settings from a state snapshot.
func Project(state session.State) Settings {
	settings := Settings{
		Ambience: state.Ambience,
		Volumes:  state.Volumes,
		Agents:   make(map[string]AgentSettings, len(state.Agents)),
	}
	settings.Solo, _ = state.SoloAgent()
	for id, agent := range state.Agents {
		settings.Agents[id] = AgentSettings{Muted: agent.Muted, Gain: agent.Volume}
	}
	return settings
}

// applySettings pushes only what changed between prev and next. A nil prev
// applies everything. Agents missing from next lose their channel.
func (d *Director) applySettings(ctx context.Context, prev *Settings, next Settings) {
	for _, id := range slices.Sorted(maps.Keys(next.Agents)) {
		agent := next.Agents[id]
		old, known := AgentSettings{}, false
		if prev != nil {
			old, known = prev.Agents[id]
		}

		if !known {
			if err := d.mixer.AttachAgent(id); err != nil {
				logger.Warn("failed to attach agent channel", "agent", id, "error", err)
			}
		}
		if !known || old.Muted != agent.Muted {
			d.mixer.SetAgentMuted(id, agent.Muted)
		}
		if !known || old.Gain != agent.Gain {
			d.mixer.SetAgentGain(id, agent.Gain)
		}
	}

	if prev != nil {
		for _, id := range slices.Sorted(maps.Keys(prev.Agents)) {
			if _, ok := next.Agents[id]; ok {
				continue
			}
			if err := d.mixer.DetachAgent(id); err != nil {
				logger.Warn("failed to detach agent channel", "agent", id, "error", err)
			}
		}
	}

	if prev == nil || prev.Solo != next.Solo {
		d.mixer.SetSoloAgent(next.Solo)
	}
	if prev == nil || prev.Volumes != next.Volumes {
		d.mixer.SetVolumes(next.Volumes.Agents, next.Volumes.Ambience, next.Volumes.Sfx)
	}
	if prev == nil || prev.Ambience != next.Ambience {
		d.mixer.SetAmbience(ctx, next.Ambience)
	}
}

// playQueuedSfx plays every queued cue once and returns the events that
// consume them.
func (d *Director) playQueuedSfx(ctx context.Context, queue []session.SfxRequest) []events.Event {
	if len(queue) == 0 {
		return nil
	}

	consumed := make([]events.Event, 0, len(queue))
	for _, request := range queue {
		d.mixer.PlaySfx(ctx, request.Name)
		consumed = append(consumed, events.NewSfxConsumed(request.ID))
	}
	return consumed
}
