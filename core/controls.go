package director

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/Mohammad-Palla/sherlock-game/core/backend"
	"github.com/Mohammad-Palla/sherlock-game/core/eventsource"
	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

// Player controls. Each becomes a local event reduced like any other, so
// session state keeps a single writer.

func (d *Director) SetAgentMuted(agentID string, muted bool) {
	d.dispatch(events.NewAgentMuteSet(agentID, muted))
}

// SetSoloAgent solos one agent; an empty id clears the solo.
func (d *Director) SetSoloAgent(agentID string) {
	d.dispatch(events.NewAgentSoloSet(agentID))
}

func (d *Director) SetAgentVolume(agentID string, volume float64) {
	d.dispatch(events.NewAgentVolumeSet(agentID, volume))
}

func (d *Director) SetVolumes(agents, ambience, sfx float64) {
	d.dispatch(events.NewVolumesSet(agents, ambience, sfx))
}

// ClearFlash acknowledges the gunshot flash once it has been shown.
func (d *Director) ClearFlash() {
	d.dispatch(events.NewFlashCleared())
}

// Case actions. In the rehearsal they are answered locally by the scripted
// source; in a live session they are forwarded to the backend.

func (d *Director) ChooseClue(ctx context.Context, choice events.ClueChoice) {
	d.dispatch(events.NewClueSelected(choice))
	if d.scripted() {
		d.source.ChooseClue(choice)
		return
	}
	d.source.MarkDecisionMade()
	d.sendAction(ctx, backend.ChooseClue(choice))
}

func (d *Director) SubmitDeduction(ctx context.Context, guess events.DeductionGuess) {
	d.dispatch(events.NewDeductionSubmitted(guess))
	if d.scripted() {
		d.source.Deduce(guess)
		return
	}
	d.source.MarkDecisionMade()
	d.sendAction(ctx, backend.Deduce(guess))
}

func (d *Director) RequestWatsonHint(ctx context.Context) {
	if d.scripted() {
		d.source.RequestHint()
		return
	}
	d.source.MarkDecisionMade()
	d.sendAction(ctx, backend.RequestWatsonHint())
}

func (d *Director) scripted() bool {
	return d.source.Mode() == eventsource.ModeScripted
}

func (d *Director) sendAction(ctx context.Context, action backend.Action) {
	if d.backend == nil {
		d.notice("No session backend to send the action to.")
		return
	}
	if err := d.backend.SendAction(ctx, d.source.Room(), action); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		logger.Warn("failed to send case action", "action", action.Action, "error", err)
		d.notice("Could not reach the case room. Try again.")
	}
}
