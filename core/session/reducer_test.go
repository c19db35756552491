package session

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

func newTestReducer() *Reducer {
	next := 0
	return NewReducer(WithSeed(7), WithIDGenerator(func(prefix string) string {
		next++
		return fmt.Sprintf("%s_%d", prefix, next)
	}))
}

func reduceAll(r *Reducer, state State, evts ...events.Event) State {
	for _, event := range evts {
		state = r.Reduce(state, event)
	}
	return state
}

func rosterState(r *Reducer, ids ...string) State {
	agents := make([]events.AgentInfo, 0, len(ids))
	for _, id := range ids {
		agents = append(agents, events.AgentInfo{ID: id, Name: id, Role: "agent"})
	}
	return r.Reduce(NewState(), events.NewRosterSet(agents...))
}

func TestReduceSceneSet(t *testing.T) {
	state := newTestReducer().Reduce(NewState(), events.NewSceneSet(events.SceneStudy))

	if state.CurrentScene != events.SceneStudy {
		t.Fatalf("expected scene %q, got %q", events.SceneStudy, state.CurrentScene)
	}
}

func TestReduceEvidenceAddIsIdempotent(t *testing.T) {
	r := newTestReducer()
	random := rand.New(rand.NewPCG(1, 2))

	state := NewState()
	firstSeen := map[string]EvidenceItem{}
	for range 200 {
		id := fmt.Sprintf("ev%d", random.IntN(12))
		state = r.Reduce(state, events.NewEvidenceAdd(id, "title "+fmt.Sprint(random.Int()), "desc"))

		for _, item := range state.Evidence {
			if _, ok := firstSeen[item.ID]; !ok {
				firstSeen[item.ID] = item
			}
		}
	}

	seen := map[string]bool{}
	for _, item := range state.Evidence {
		if seen[item.ID] {
			t.Fatalf("expected unique evidence ids, %q repeated", item.ID)
		}
		seen[item.ID] = true
		if item != firstSeen[item.ID] {
			t.Fatalf("expected re-adding %q to keep %+v, got %+v", item.ID, firstSeen[item.ID], item)
		}
	}
}

func TestReduceEvidenceKeepsSuppliedPositionAndFillsMissing(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, NewState(),
		events.NewEvidenceAddAt("clue_a", "Clue A", "Citrus", 18, 28),
		events.NewEvidenceAdd("clue_b", "Clue B", "Bell"),
	)

	if got := state.Evidence[0].Position; got != (Position{X: 18, Y: 28}) {
		t.Fatalf("expected supplied position, got %+v", got)
	}
	got := state.Evidence[1].Position
	if got.X < 15 || got.X > 85 || got.Y < 15 || got.Y > 70 {
		t.Fatalf("expected generated position inside the board, got %+v", got)
	}
}

func TestReduceEvidencePositionsAreDeterministicForSeed(t *testing.T) {
	first := newTestReducer().Reduce(NewState(), events.NewEvidenceAdd("x", "X", "x"))
	second := newTestReducer().Reduce(NewState(), events.NewEvidenceAdd("x", "X", "x"))

	if first.Evidence[0].Position != second.Evidence[0].Position {
		t.Fatalf("expected equal positions for equal seeds, got %+v and %+v",
			first.Evidence[0].Position, second.Evidence[0].Position)
	}
}

func TestReduceCaptionWindowKeepsLastFiveInOrder(t *testing.T) {
	r := newTestReducer()
	state := NewState()
	for i := range 12 {
		state = r.Reduce(state, events.NewCaption("watson", fmt.Sprintf("line %d", i)))
		if len(state.Captions) > CaptionWindow {
			t.Fatalf("expected at most %d captions, got %d", CaptionWindow, len(state.Captions))
		}
	}

	for i, caption := range state.Captions {
		if expected := fmt.Sprintf("line %d", 7+i); caption.Text != expected {
			t.Fatalf("expected caption %d to be %q, got %q", i, expected, caption.Text)
		}
	}
}

func TestReduceAgentSpeaking(t *testing.T) {
	r := newTestReducer()
	state := rosterState(r, "watson")

	state = r.Reduce(state, events.NewAgentSpeaking("watson", 1.7))
	if got := state.Agents["watson"].Level; got != 1 {
		t.Fatalf("expected level clamped to 1, got %v", got)
	}

	state = r.Reduce(state, events.AgentSpeaking{Base: events.NewBase(events.KindAgentSpeaking), AgentID: "watson"})
	if got := state.Agents["watson"].Level; got != 1 {
		t.Fatalf("expected missing level to keep 1, got %v", got)
	}

	state = r.Reduce(state, events.NewAgentSpeaking("lestrade", 0.5))
	if _, ok := state.Agents["lestrade"]; ok {
		t.Fatalf("expected speaking event for unknown agent to be ignored")
	}
}

func TestReduceTimerInvariantHolds(t *testing.T) {
	r := newTestReducer()
	random := rand.New(rand.NewPCG(3, 4))

	state := NewState()
	for range 500 {
		var event events.Event
		switch random.IntN(3) {
		case 0:
			event = events.NewTimerStart(random.IntN(300))
		case 1:
			event = events.NewTimerTick(random.IntN(400) - 50)
		default:
			event = events.NewTimerPenalty(random.IntN(60))
		}
		state = r.Reduce(state, event)

		if state.Timer == nil {
			continue
		}
		timer := *state.Timer
		if timer.RemainingSeconds < 0 || timer.RemainingSeconds > timer.TotalSeconds {
			t.Fatalf("expected remaining in [0,%d], got %d", timer.TotalSeconds, timer.RemainingSeconds)
		}
		if timer.Running != (timer.RemainingSeconds > 0) {
			t.Fatalf("expected running to follow remaining, got %+v", timer)
		}
	}
}

func TestReduceTimerPenalty(t *testing.T) {
	r := newTestReducer()

	if state := r.Reduce(NewState(), events.NewTimerPenalty(15)); state.Timer != nil {
		t.Fatalf("expected penalty without timer to be a no-op, got %+v", state.Timer)
	}

	state := reduceAll(r, NewState(), events.NewTimerStart(240), events.NewTimerTick(195), events.NewTimerPenalty(15))
	if got := state.Timer.RemainingSeconds; got != 180 {
		t.Fatalf("expected 180 seconds remaining, got %d", got)
	}

	state = r.Reduce(state, events.NewTimerPenalty(500))
	if state.Timer.RemainingSeconds != 0 || state.Timer.Running {
		t.Fatalf("expected penalty to floor at 0 and stop the timer, got %+v", state.Timer)
	}
}

func TestReduceTimerStartClearsOutcome(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, NewState(), events.NewRescueFail(), events.NewTimerStart(60))

	if state.CaseOutcome != nil {
		t.Fatalf("expected outcome cleared, got %v", *state.CaseOutcome)
	}
	if *state.Timer != (Timer{TotalSeconds: 60, RemainingSeconds: 60, Running: true}) {
		t.Fatalf("unexpected timer %+v", *state.Timer)
	}
}

func TestReduceRescueStopsTimerWithoutChangingRemaining(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, NewState(), events.NewTimerStart(240), events.NewTimerTick(100), events.NewRescueSuccess())

	if state.CaseOutcome == nil || *state.CaseOutcome != events.OutcomeSuccess {
		t.Fatalf("expected success outcome, got %v", state.CaseOutcome)
	}
	if state.Timer.Running || state.Timer.RemainingSeconds != 100 {
		t.Fatalf("expected stopped timer at 100, got %+v", state.Timer)
	}
}

func TestReduceIntroSceneResetIsIdempotent(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, rosterState(r, "watson"),
		events.NewEvidenceAdd("clue_a", "A", "a"),
		events.NewEvidenceLink("clue_a", "clue_b"),
		events.NewCaption("watson", "Move."),
		events.NewTimerStart(240),
		events.NewRescueFail(),
		events.NewLocationConfirmed("Gate 3"),
		events.NewClueSelected(events.ClueA),
		events.NewDeductionSubmitted(events.DeductionCathedral),
		events.NewMisdirect(),
	)

	for i := range 2 {
		state = r.Reduce(state, events.NewSceneSet(events.SceneCaseIntro))

		if len(state.Evidence) != 0 || len(state.Links) != 0 || len(state.Captions) != 0 {
			t.Fatalf("pass %d: expected empty board and captions, got %+v", i, state)
		}
		if state.Timer != nil || state.CaseOutcome != nil || state.LocationLabel != nil {
			t.Fatalf("pass %d: expected timer, outcome and location cleared", i)
		}
		if state.SelectedClue != nil || state.Deduction != nil || state.Misdirected {
			t.Fatalf("pass %d: expected selections and misdirect cleared", i)
		}
		if _, ok := state.Agents["watson"]; !ok {
			t.Fatalf("pass %d: expected roster to survive the reset", i)
		}
	}
}

func TestReduceSoundCues(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, NewState(), events.NewSoundCue(events.SfxTelegram), events.NewSoundCue(events.SfxGunshot))

	if len(state.SfxQueue) != 2 {
		t.Fatalf("expected two queued cues, got %d", len(state.SfxQueue))
	}
	if state.SfxQueue[0].Name != events.SfxTelegram || state.SfxQueue[1].Name != events.SfxGunshot {
		t.Fatalf("unexpected queue order %+v", state.SfxQueue)
	}
	if !state.Flash {
		t.Fatalf("expected gunshot to raise the flash")
	}

	state = r.Reduce(state, events.NewSfxConsumed(state.SfxQueue[0].ID))
	if len(state.SfxQueue) != 1 || state.SfxQueue[0].Name != events.SfxGunshot {
		t.Fatalf("expected only the gunshot to remain, got %+v", state.SfxQueue)
	}

	if state = r.Reduce(state, events.NewFlashCleared()); state.Flash {
		t.Fatalf("expected flash cleared")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	r := newTestReducer()
	before := reduceAll(r, rosterState(r, "watson"), events.NewCaption("watson", "one"))

	_ = reduceAll(r, before,
		events.NewCaption("watson", "two"),
		events.NewAgentSpeaking("watson", 0.8),
		events.NewAgentMuteSet("watson", true),
	)

	if len(before.Captions) != 1 {
		t.Fatalf("expected input captions untouched, got %d", len(before.Captions))
	}
	if agent := before.Agents["watson"]; agent.Level != 0 || agent.Muted {
		t.Fatalf("expected input agent untouched, got %+v", agent)
	}
}

func TestReduceSoloIsExclusive(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, rosterState(r, "a", "b", "c"), events.NewAgentSoloSet("a"), events.NewAgentSoloSet("b"))

	if id, ok := state.SoloAgent(); !ok || id != "b" {
		t.Fatalf("expected b soloed, got %q", id)
	}
	if state.Agents["a"].Solo {
		t.Fatalf("expected a no longer soloed")
	}

	state = r.Reduce(state, events.NewAgentSoloSet(""))
	if _, ok := state.SoloAgent(); ok {
		t.Fatalf("expected solo cleared")
	}
}

func TestReduceRosterKeepsMixPreferences(t *testing.T) {
	r := newTestReducer()
	state := reduceAll(r, rosterState(r, "watson"), events.NewAgentMuteSet("watson", true), events.NewAgentVolumeSet("watson", 0.25))

	state = r.Reduce(state, events.NewRosterSet(
		events.AgentInfo{ID: "watson", Name: "Dr. Watson", Role: "Companion"},
		events.AgentInfo{ID: "moriarty", Name: "Professor Moriarty", Role: "Antagonist"},
	))

	watson := state.Agents["watson"]
	if !watson.Muted || watson.Volume != 0.25 || watson.Name != "Dr. Watson" {
		t.Fatalf("expected watson preferences kept with new name, got %+v", watson)
	}
	if got := state.Agents["moriarty"].Volume; got != 1 {
		t.Fatalf("expected new agent at unity volume, got %v", got)
	}
}

type unknownEvent struct{ events.Base }

func TestReduceIgnoresUnknownKinds(t *testing.T) {
	r := newTestReducer()
	state := rosterState(r, "watson")

	next := r.Reduce(state, unknownEvent{Base: events.NewBase("FUTURE_EVENT")})

	if next.CurrentScene != state.CurrentScene || len(next.Agents) != len(state.Agents) {
		t.Fatalf("expected unknown kind to leave state unchanged")
	}
}
