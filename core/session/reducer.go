package session

import (
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
	"github.com/google/uuid"
)

// Reducer applies events to state. Reduce never mutates its input; the only
// state it carries is the injected position generator and id source.
//
// A Reducer is not safe for concurrent use; [Store] serializes access.
type Reducer struct {
	positions *rand.Rand
	newID     func(prefix string) string
}

type ReducerOption func(*Reducer)

// WithSeed makes default board positions deterministic.
func WithSeed(seed uint64) ReducerOption {
	return func(r *Reducer) {
		r.positions = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithIDGenerator replaces the caption and sfx request id source.
func WithIDGenerator(newID func(prefix string) string) ReducerOption {
	return func(r *Reducer) {
		if newID != nil {
			r.newID = newID
		}
	}
}

func NewReducer(opts ...ReducerOption) *Reducer {
	seed := uint64(time.Now().UnixNano())
	r := &Reducer{
		positions: rand.New(rand.NewPCG(seed, seed)),
		newID:     func(prefix string) string { return prefix + "_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce returns the state that follows event. Unknown kinds return state
// unchanged.
func (r *Reducer) Reduce(state State, event events.Event) State {
	switch e := event.(type) {
	case events.SceneSet:
		state.CurrentScene = e.Scene
		if e.Scene == events.SceneCaseIntro {
			state = resetInvestigation(state)
		}

	case events.AgentSpeaking:
		agent, ok := state.Agents[e.AgentID]
		if !ok {
			return state
		}
		if e.Level != nil {
			agent.Level = clamp01(*e.Level)
		}
		state.Agents = withAgent(state.Agents, agent)

	case events.Caption:
		captions := append(slices.Clone(state.Captions), Caption{
			ID:        r.newID("cap"),
			AgentID:   e.AgentID,
			Text:      e.Text,
			CreatedAt: e.Timestamp(),
		})
		if overflow := len(captions) - CaptionWindow; overflow > 0 {
			captions = slices.Clone(captions[overflow:])
		}
		state.Captions = captions

	case events.EvidenceAdd:
		if slices.ContainsFunc(state.Evidence, func(item EvidenceItem) bool { return item.ID == e.ID }) {
			return state
		}
		state.Evidence = append(slices.Clone(state.Evidence), EvidenceItem{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Position:    r.position(e.X, e.Y),
		})

	case events.EvidenceLink:
		state.Links = append(slices.Clone(state.Links), EvidenceLink{FromID: e.FromID, ToID: e.ToID})

	case events.SoundCue:
		state.SfxQueue = append(slices.Clone(state.SfxQueue), SfxRequest{ID: r.newID("sfx"), Name: e.Name})
		if e.Name == events.SfxGunshot {
			state.Flash = true
		}

	case events.TimerStart:
		total := max(0, e.Seconds)
		state.Timer = &Timer{TotalSeconds: total, RemainingSeconds: total, Running: total > 0}
		state.CaseOutcome = nil

	case events.TimerTick:
		if state.Timer == nil {
			return state
		}
		state.Timer = withRemaining(*state.Timer, e.Seconds)

	case events.TimerPenalty:
		if state.Timer == nil {
			return state
		}
		state.Timer = withRemaining(*state.Timer, state.Timer.RemainingSeconds-max(0, e.Seconds))

	case events.LocationConfirmed:
		state.LocationLabel = &e.Label

	case events.RescueSuccess:
		state = withOutcome(state, events.OutcomeSuccess)
	case events.RescueFail:
		state = withOutcome(state, events.OutcomeFail)

	case events.Misdirect:
		state.Misdirected = true

	case events.AmbienceSet:
		state.Ambience = e.Track

	default:
		return r.reduceLocal(state, event)
	}

	return state
}

func (r *Reducer) reduceLocal(state State, event events.Event) State {
	switch e := event.(type) {
	case events.RosterSet:
		agents := make(map[string]Agent, len(e.Agents))
		for _, info := range e.Agents {
			agent, ok := state.Agents[info.ID]
			if !ok {
				agent = Agent{Volume: 1}
			}
			agent.ID, agent.Name, agent.Role = info.ID, info.Name, info.Role
			agents[info.ID] = agent
		}
		state.Agents = agents

	case events.AgentMuteSet:
		agent, ok := state.Agents[e.AgentID]
		if !ok {
			return state
		}
		agent.Muted = e.Muted
		state.Agents = withAgent(state.Agents, agent)

	case events.AgentSoloSet:
		if _, ok := state.Agents[e.AgentID]; !ok && e.AgentID != "" {
			return state
		}
		agents := make(map[string]Agent, len(state.Agents))
		for id, agent := range state.Agents {
			agent.Solo = id == e.AgentID
			agents[id] = agent
		}
		state.Agents = agents

	case events.AgentVolumeSet:
		agent, ok := state.Agents[e.AgentID]
		if !ok {
			return state
		}
		agent.Volume = clamp01(e.Volume)
		state.Agents = withAgent(state.Agents, agent)

	case events.VolumesSet:
		state.Volumes = Volumes{
			Agents:   clamp01(e.Agents),
			Ambience: clamp01(e.Ambience),
			Sfx:      clamp01(e.Sfx),
		}

	case events.ClueSelected:
		state.SelectedClue = &e.Choice
	case events.DeductionSubmitted:
		state.Deduction = &e.Guess

	case events.SfxConsumed:
		state.SfxQueue = slices.DeleteFunc(slices.Clone(state.SfxQueue), func(request SfxRequest) bool {
			return request.ID == e.ID
		})

	case events.FlashCleared:
		state.Flash = false

	case events.ConnectionChanged:
		state.Connection = Connection{Status: e.Status, Room: e.Room}
	}

	return state
}

// resetInvestigation clears every investigation-scoped field in one step.
func resetInvestigation(state State) State {
	state.Evidence = []EvidenceItem{}
	state.Links = []EvidenceLink{}
	state.Captions = []Caption{}
	state.Timer = nil
	state.CaseOutcome = nil
	state.LocationLabel = nil
	state.SelectedClue = nil
	state.Deduction = nil
	state.Misdirected = false
	return state
}

func withAgent(agents map[string]Agent, agent Agent) map[string]Agent {
	updated := maps.Clone(agents)
	updated[agent.ID] = agent
	return updated
}

func withRemaining(timer Timer, remaining int) *Timer {
	timer.RemainingSeconds = min(timer.TotalSeconds, max(0, remaining))
	timer.Running = timer.RemainingSeconds > 0
	return &timer
}

// withOutcome records the outcome and freezes the timer where it stands.
func withOutcome(state State, outcome events.Outcome) State {
	state.CaseOutcome = &outcome
	if state.Timer != nil {
		timer := *state.Timer
		timer.Running = false
		state.Timer = &timer
	}
	return state
}

// position keeps supplied coordinates and fills missing ones inside the
// visible board area.
func (r *Reducer) position(x, y *float64) Position {
	position := Position{}
	if x != nil {
		position.X = *x
	} else {
		position.X = r.positions.Float64()*70 + 15
	}
	if y != nil {
		position.Y = *y
	} else {
		position.Y = r.positions.Float64()*55 + 15
	}
	return position
}
