package main

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/Mohammad-Palla/sherlock-game/core/eventsource"
	"github.com/Mohammad-Palla/sherlock-game/core/session"
)

type fakeController struct {
	mu    sync.Mutex
	calls []string
	mode  eventsource.Mode

	// liveFails makes a switch to live fall back to the rehearsal.
	liveFails bool
}

func (f *fakeController) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeController) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeController) Connect(ctx context.Context) error {
	f.record("connect")
	return nil
}

func (f *fakeController) Snapshot() session.State {
	return session.NewState()
}

func (f *fakeController) ChooseClue(ctx context.Context, choice events.ClueChoice) {
	f.record("clue " + string(choice))
}

func (f *fakeController) SubmitDeduction(ctx context.Context, guess events.DeductionGuess) {
	f.record("deduce " + string(guess))
}

func (f *fakeController) RequestWatsonHint(ctx context.Context) {
	f.record("hint")
}

func (f *fakeController) SetAgentMuted(agentID string, muted bool) {
	if muted {
		f.record("mute " + agentID)
		return
	}
	f.record("unmute " + agentID)
}

func (f *fakeController) SetSoloAgent(agentID string) {
	f.record("solo " + agentID)
}

func (f *fakeController) SetVolumes(agents, ambience, sfx float64) {
	f.record("volumes")
}

func (f *fakeController) Mode() eventsource.Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == "" {
		return eventsource.ModeScripted
	}
	return f.mode
}

func (f *fakeController) SetMode(ctx context.Context, mode eventsource.Mode) error {
	f.record("mode " + string(mode))
	f.mu.Lock()
	defer f.mu.Unlock()
	if mode == eventsource.ModeLive && f.liveFails {
		f.mode = eventsource.ModeScripted
		return nil
	}
	f.mode = mode
	return nil
}

func (f *fakeController) ClearFlash() {
	f.record("clear flash")
}

func keyPress(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func stateWithAgents() session.State {
	state := session.NewState()
	state.Agents = map[string]session.Agent{
		"sherlock": {ID: "sherlock", Name: "Sherlock Holmes", Volume: 1},
		"watson":   {ID: "watson", Name: "Dr. Watson", Volume: 1, Muted: true},
	}
	return state
}

func TestConsoleKeysDriveDirector(t *testing.T) {
	testCases := []struct {
		name     string
		keys     []string
		expected string
	}{
		{name: "clue", keys: []string{"2"}, expected: "clue B"},
		{name: "correct deduction", keys: []string{"u"}, expected: "deduce RIVER_UNDERPASS"},
		{name: "wrong deduction", keys: []string{"c"}, expected: "deduce CATHEDRAL"},
		{name: "hint", keys: []string{"h"}, expected: "hint"},
		{name: "mute selected", keys: []string{"m"}, expected: "mute sherlock"},
		{name: "unmute next", keys: []string{"tab", "m"}, expected: "unmute watson"},
		{name: "solo selected", keys: []string{"s"}, expected: "solo sherlock"},
		{name: "ambience", keys: []string{"+"}, expected: "volumes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeController{}
			var model tea.Model = newConsole(context.Background(), fake)
			model, _ = model.Update(stateMsg(stateWithAgents()))

			var cmd tea.Cmd
			for _, k := range tc.keys {
				model, cmd = model.Update(keyPress(k))
			}
			if cmd == nil {
				t.Fatalf("expected a command for %v", tc.keys)
			}
			cmd()

			if got := fake.last(); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestConsoleFlashSchedulesClear(t *testing.T) {
	fake := &fakeController{}
	var model tea.Model = newConsole(context.Background(), fake)

	state := session.NewState()
	state.Flash = true
	model, cmd := model.Update(stateMsg(state))
	if cmd == nil {
		t.Fatalf("expected a flash timer")
	}

	model, cmd = model.Update(flashDoneMsg{})
	if cmd == nil {
		t.Fatalf("expected a clear command")
	}
	cmd()
	if got := fake.last(); got != "clear flash" {
		t.Fatalf("expected flash cleared, got %q", got)
	}

	if _, cmd = model.Update(stateMsg(state)); cmd != nil {
		t.Fatalf("expected no second timer while the flash is still up")
	}
}

func TestConsoleViewShowsSession(t *testing.T) {
	fake := &fakeController{}
	var model tea.Model = newConsole(context.Background(), fake)

	state := stateWithAgents()
	state.Captions = []session.Caption{{ID: "c1", AgentID: "sherlock", Text: "The river keeps its secrets."}}
	state.Timer = &session.Timer{TotalSeconds: 240, RemainingSeconds: 185, Running: true}
	model, _ = model.Update(stateMsg(state))
	model, _ = model.Update(connectedMsg{})
	model, _ = model.Update(noticeMsg("Running the rehearsal instead."))

	view := model.View()
	for _, expected := range []string{"Sherlock Holmes", "The river keeps its secrets.", "03:05", "rehearsal"} {
		if !strings.Contains(view, expected) {
			t.Fatalf("expected view to contain %q, got %q", expected, view)
		}
	}
}

func TestQuitKey(t *testing.T) {
	var model tea.Model = newConsole(context.Background(), &fakeController{})
	_, cmd := model.Update(keyPress("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestConsoleTogglesMode(t *testing.T) {
	testCases := []struct {
		name      string
		start     eventsource.Mode
		liveFails bool
		requested string
		expected  eventsource.Mode
	}{
		{name: "rehearsal to live", start: eventsource.ModeScripted, requested: "mode live", expected: eventsource.ModeLive},
		{name: "live to rehearsal", start: eventsource.ModeLive, requested: "mode scripted", expected: eventsource.ModeScripted},
		{name: "live unreachable", start: eventsource.ModeScripted, liveFails: true, requested: "mode live", expected: eventsource.ModeScripted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeController{mode: tc.start, liveFails: tc.liveFails}
			var model tea.Model = newConsole(context.Background(), fake)

			model, cmd := model.Update(keyPress("l"))
			if cmd == nil {
				t.Fatalf("expected a mode switch command")
			}
			msg := cmd()
			if got := fake.last(); got != tc.requested {
				t.Fatalf("expected %q, got %q", tc.requested, got)
			}

			model, _ = model.Update(msg)
			if got := model.(console).mode; got != tc.expected {
				t.Fatalf("expected console mode %q, got %q", tc.expected, got)
			}
			if !strings.Contains(model.View(), string(tc.expected)) {
				t.Fatalf("expected the view to show %q", tc.expected)
			}
		})
	}
}
