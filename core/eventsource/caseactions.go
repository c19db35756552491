package eventsource

import (
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

const (
	wrongDeductionPenalty = 45
	rescueDelay           = 4 * time.Second

	underpassLabel = "Riverside Service Underpass - Gate 3"
)

// The rehearsal reactions to player decisions. Each marks the decision as
// made and is dropped when the source is not running.

func (s *Source) ChooseClue(choice events.ClueChoice) {
	s.react(func() []events.Event {
		if choice != events.ClueA {
			return nil
		}
		return SpeakingLine(AgentWatson, "Citrus suggests someone is hiding stale air in a sealed space.")
	})
}

func (s *Source) RequestHint() {
	s.react(func() []events.Event {
		return SpeakingLine(AgentWatson, "Don't chase the dramatic. Follow the practical clue: enclosed, damp, and near the river.")
	})
}

// Deduce resolves a deduction. The right location stops the countdown and
// schedules the rescue; anything else costs time on the countdown.
func (s *Source) Deduce(guess events.DeductionGuess) {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	s.fire(func() []events.Event {
		if !s.currentLocked(generation) {
			return nil
		}
		s.decisionMade = true

		if guess != events.DeductionRiverUnderpass {
			return s.misdirectLocked()
		}

		s.stopCountdownLocked()
		s.beats.Add(s.clock.AfterFunc(rescueDelay, func() {
			s.fire(func() []events.Event {
				if !s.currentLocked(generation) {
					return nil
				}
				return rescued()
			})
		}))
		return located()
	})
}

func (s *Source) react(build func() []events.Event) {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	s.fire(func() []events.Event {
		if !s.currentLocked(generation) {
			return nil
		}
		s.decisionMade = true
		return build()
	})
}

func located() []events.Event {
	batch := []events.Event{
		events.NewLocationConfirmed(underpassLabel),
		events.NewSceneSet(events.SceneUnderpass),
		events.NewAmbienceSet(events.AmbienceAlley),
		events.NewSoundCue(events.SfxSiren),
		events.NewSoundCue(events.SfxFootsteps),
		events.NewSoundCue(events.SfxDoorRattle),
	}
	batch = append(batch, SpeakingLine(AgentWatson, "I'm calling it in - medical, hazmat, all of it. Move.")...)
	return append(batch, SpeakingLine(AgentMoriarty, "There you are. You do love a chase.")...)
}

func rescued() []events.Event {
	batch := []events.Event{events.NewRescueSuccess()}
	batch = append(batch, SpeakingLine(AgentMoriarty, "Tonight you win their breathing. Tomorrow, I take something dearer.")...)
	return append(batch, events.NewSoundCue(events.SfxCallDrop))
}

func (s *Source) misdirectLocked() []events.Event {
	batch := []events.Event{
		events.NewMisdirect(),
		events.NewSceneSet(events.SceneStreetBait),
	}
	if s.countdown != nil {
		batch = append(batch, s.penalizeLocked(wrongDeductionPenalty)...)
	}
	batch = append(batch, SpeakingLine(AgentMoriarty, "A bell? How predictable. You walked into the fog.")...)
	return append(batch, SpeakingLine(AgentWatson, "Don't chase the dramatic. Chase the practical.")...)
}
