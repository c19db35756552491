package session

import (
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

// CaptionWindow is the number of most recent captions kept in state.
const CaptionWindow = 5

type State struct {
	CurrentScene events.SceneID
	Agents       map[string]Agent
	Evidence     []EvidenceItem
	Links        []EvidenceLink
	Captions     []Caption
	Ambience     events.AmbienceTrack
	SfxQueue     []SfxRequest

	Timer         *Timer
	CaseOutcome   *events.Outcome
	LocationLabel *string
	SelectedClue  *events.ClueChoice
	Deduction     *events.DeductionGuess
	Misdirected   bool

	// Flash is a transient rendering hint raised by gunshot-class cues.
	Flash      bool
	Volumes    Volumes
	Connection Connection
}

// Agent is a roster entry. Level is metering output, not narrative truth.
type Agent struct {
	ID     string
	Name   string
	Role   string
	Level  float64
	Muted  bool
	Solo   bool
	Volume float64
}

type Position struct {
	X float64
	Y float64
}

type EvidenceItem struct {
	ID          string
	Title       string
	Description string
	Position    Position
}

// EvidenceLink is an unordered pair of evidence ids.
type EvidenceLink struct {
	FromID string
	ToID   string
}

type Caption struct {
	ID        string
	AgentID   string
	Text      string
	CreatedAt time.Time
}

type Timer struct {
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
}

type SfxRequest struct {
	ID   string
	Name events.SfxName
}

type Volumes struct {
	Agents   float64
	Ambience float64
	Sfx      float64
}

type Connection struct {
	Status events.ConnectionStatus
	Room   string
}

// DefaultVolumes are the global volumes a session starts with.
var DefaultVolumes = Volumes{Agents: 0.9, Ambience: 0.6, Sfx: 0.8}

// NewState returns the empty state a director starts from.
func NewState() State {
	return State{
		CurrentScene: events.SceneBoot,
		Agents:       map[string]Agent{},
		Evidence:     []EvidenceItem{},
		Links:        []EvidenceLink{},
		Captions:     []Caption{},
		Ambience:     events.AmbienceRain,
		SfxQueue:     []SfxRequest{},
		Volumes:      DefaultVolumes,
		Connection:   Connection{Status: events.ConnectionDisconnected},
	}
}

// SoloAgent returns the id of the soloed agent, if any.
func (s State) SoloAgent() (string, bool) {
	for id, agent := range s.Agents {
		if agent.Solo {
			return id, true
		}
	}
	return "", false
}

func clamp01(value float64) float64 {
	return min(1, max(0, value))
}
