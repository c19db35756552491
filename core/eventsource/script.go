package eventsource

import (
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

// Beat is one scheduled step of a rehearsal script, fired At after start.
type Beat struct {
	At time.Duration
	// StartCountdown, when positive, starts the repeating countdown before
	// Events are emitted.
	StartCountdown int
	// Events builds the events of the beat at fire time.
	Events func() []events.Event
	// Penalty, when positive, deducts seconds from the running countdown
	// after Events are emitted.
	Penalty int
	// SkipIfDecided drops the whole beat once the player has acted.
	SkipIfDecided bool
}

// Script is a deterministic rehearsal timeline.
type Script struct {
	// Opening is emitted synchronously when the source starts.
	Opening func() []events.Event
	Beats   []Beat
}

// SpeakingLine is the event sequence of an agent delivering one line:
// speaking level ramps up, the caption lands, the level drops.
func SpeakingLine(agentID, text string) []events.Event {
	return []events.Event{
		events.NewAgentSpeaking(agentID, 0.3),
		events.NewAgentSpeaking(agentID, 0.7),
		events.NewCaption(agentID, text),
		events.NewAgentSpeaking(agentID, 0.1),
	}
}

func lines(pairs ...string) func() []events.Event {
	return func() []events.Event {
		var out []events.Event
		for i := 0; i+1 < len(pairs); i += 2 {
			out = append(out, SpeakingLine(pairs[i], pairs[i+1])...)
		}
		return out
	}
}

const (
	AgentSherlock = "sherlock"
	AgentWatson   = "watson"
	AgentMoriarty = "moriarty"
)

// RehearsalScript is the offline case timeline used when no live session is
// available.
func RehearsalScript() Script {
	return Script{
		Opening: func() []events.Event {
			return []events.Event{
				events.NewSceneSet(events.SceneCaseIntro),
				events.NewAmbienceSet(events.AmbienceRain),
			}
		},
		Beats: []Beat{
			{At: 2 * time.Second, Events: lines(
				AgentMoriarty, "Evening, Sherlock. I have two small lives on loan.",
				AgentWatson, "Tell us where they are.",
			)},
			{At: 7 * time.Second, Events: lines(
				AgentMoriarty, "They are eating chocolates. Sweet, but not safe.",
			)},
			{At: 10 * time.Second, Events: lines(
				AgentMoriarty, "Find them before the clock bites, or the papers will do the rest.",
			)},
			{At: 15 * time.Second, Events: func() []events.Event {
				return []events.Event{
					events.NewSoundCue(events.SfxTelegram),
					events.NewEvidenceAddAt("clue_a", "Clue A - Citrus Air Freshener",
						"Harsh and cheap. Someone is masking stale air.", 18, 28),
					events.NewEvidenceAddAt("clue_b", "Clue B - Cathedral Bell",
						"A bell noted at midnight. Too theatrical?", 48, 20),
					events.NewEvidenceAddAt("clue_c", "Clue C - Violin Case",
						"Placed to bait your ego.", 70, 34),
					events.NewEvidenceLink("clue_a", "clue_c"),
				}
			}},
			{At: 18 * time.Second, Events: lines(
				AgentMoriarty, "Three clues. One true, one bait, one tailored to your vanity.",
			)},
			{At: 20 * time.Second, StartCountdown: 240, Events: func() []events.Event {
				return []events.Event{
					events.NewSoundCue(events.SfxHeartbeat),
					events.NewAmbienceSet(events.AmbienceClock),
				}
			}},
			{At: 22 * time.Second, Events: lines(AgentWatson, "This is not a game.")},
			{At: 24 * time.Second, Events: lines(AgentMoriarty, "Everything is a game. You simply arrived late.")},
			{At: 28 * time.Second, Events: lines(AgentMoriarty, "While you think, they take small bites. Brave, obedient.")},
			{
				At:            35 * time.Second,
				SkipIfDecided: true,
				Events:        lines(AgentMoriarty, "While you hesitate, they keep nibbling. Brave little things."),
				Penalty:       15,
			},
		},
	}
}
