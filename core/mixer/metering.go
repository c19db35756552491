package mixer

import (
	"github.com/Mohammad-Palla/sherlock-game/core/audio"
)

type level struct {
	agentID string
	value   float64
}

func (e *Engine) startMetering() {
	e.meterMu.Lock()
	defer e.meterMu.Unlock()

	if e.meterLoop != nil {
		return
	}
	e.meterGeneration++
	generation := e.meterGeneration
	e.meterLoop = e.clock.Every(e.frameInterval(), func() { e.meterFrame(generation) })
}

// stopMetering cancels the loop. A frame already running finishes before
// this returns, and no later frame reports.
func (e *Engine) stopMetering() {
	e.meterMu.Lock()
	defer e.meterMu.Unlock()

	if e.meterLoop != nil {
		e.meterLoop.Cancel()
		e.meterLoop = nil
	}
	e.meterGeneration++
}

func (e *Engine) meterFrame(generation uint64) {
	e.meterMu.Lock()
	defer e.meterMu.Unlock()
	if generation != e.meterGeneration || e.onLevels == nil {
		return
	}

	for _, reading := range e.readLevels() {
		e.onLevels(reading.agentID, reading.value)
	}
}

func (e *Engine) readLevels() []level {
	e.mu.Lock()
	defer e.mu.Unlock()

	levels := make([]level, 0, len(e.agentOrder))
	for _, agentID := range e.agentOrder {
		n := e.agents[agentID].meter.Read(e.window)
		levels = append(levels, level{agentID: agentID, value: audio.Level(e.window[:n])})
	}
	return levels
}
