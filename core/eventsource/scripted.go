package eventsource

import (
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

const countdownInterval = time.Second

func (s *Source) startScripted(generation uint64) {
	s.fire(func() []events.Event {
		if !s.currentLocked(generation) {
			return nil
		}
		s.decisionMade = false
		if s.script.Opening == nil {
			return nil
		}
		return s.script.Opening()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(generation) {
		return
	}
	for _, beat := range s.script.Beats {
		s.beats.Add(s.clock.AfterFunc(beat.At, func() {
			s.fire(func() []events.Event { return s.beatLocked(generation, beat) })
		}))
	}
	logger.Info("scripted timeline started", "beats", len(s.script.Beats))
}

func (s *Source) beatLocked(generation uint64, beat Beat) []events.Event {
	if !s.currentLocked(generation) {
		return nil
	}
	if beat.SkipIfDecided && s.decisionMade {
		return nil
	}

	var batch []events.Event
	if beat.StartCountdown > 0 {
		batch = append(batch, s.startCountdownLocked(generation, beat.StartCountdown))
	}
	if beat.Events != nil {
		batch = append(batch, beat.Events()...)
	}
	if beat.Penalty > 0 && s.countdown != nil {
		batch = append(batch, s.penalizeLocked(beat.Penalty)...)
	}
	return batch
}

// startCountdownLocked replaces any running countdown, so there is never more
// than one periodic emitter.
func (s *Source) startCountdownLocked(generation uint64, total int) events.Event {
	s.stopCountdownLocked()

	countdownGeneration := s.countdownGeneration
	s.remaining = total
	s.countdown = s.clock.Every(countdownInterval, func() {
		s.fire(func() []events.Event { return s.tickLocked(generation, countdownGeneration) })
	})
	return events.NewTimerStart(total)
}

func (s *Source) stopCountdownLocked() {
	if s.countdown != nil {
		s.countdown.Cancel()
		s.countdown = nil
	}
	s.countdownGeneration++
	s.remaining = 0
}

func (s *Source) tickLocked(generation, countdownGeneration uint64) []events.Event {
	if !s.currentLocked(generation) || s.countdownGeneration != countdownGeneration || s.countdown == nil {
		return nil
	}

	s.remaining = max(0, s.remaining-1)
	batch := []events.Event{events.NewTimerTick(s.remaining)}
	if s.remaining == 0 {
		s.stopCountdownLocked()
		batch = append(batch, events.NewRescueFail(), events.NewSoundCue(events.SfxCallDrop))
	}
	return batch
}

func (s *Source) penalizeLocked(seconds int) []events.Event {
	s.remaining = max(0, s.remaining-seconds)
	return []events.Event{
		events.NewTimerPenalty(seconds),
		events.NewTimerTick(s.remaining),
	}
}
