package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for payloads that are not valid JSON objects or
	// miss a field required by their type.
	ErrMalformed = errors.New("malformed event payload")
	// ErrUnknownKind is returned for well-formed payloads whose type is not
	// part of the wire vocabulary. Callers are expected to ignore them.
	ErrUnknownKind = errors.New("unknown event kind")
)

// Payload is the wire shape of a live-feed message: one JSON object per
// event, discriminated by Type.
type Payload struct {
	Type        Kind           `json:"type" jsonschema:"required,description=Event tag"`
	Scene       *SceneID       `json:"scene,omitempty" jsonschema:"enum=BOOT,enum=CRIME_SCENE,enum=STUDY,enum=LAIR,enum=STUDY_NOIR,enum=STREET_BAIT,enum=UNDERPASS"`
	AgentID     *string        `json:"agentId,omitempty"`
	Text        *string        `json:"text,omitempty"`
	Level       *float64       `json:"level,omitempty" jsonschema:"minimum=0,maximum=1"`
	ID          *string        `json:"id,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	X           *float64       `json:"x,omitempty"`
	Y           *float64       `json:"y,omitempty"`
	FromID      *string        `json:"fromId,omitempty"`
	ToID        *string        `json:"toId,omitempty"`
	Seconds     *int           `json:"seconds,omitempty" jsonschema:"minimum=0"`
	Label       *string        `json:"label,omitempty"`
	Coordinates *string        `json:"coordinates,omitempty"`
	Track       *AmbienceTrack `json:"track,omitempty" jsonschema:"enum=RAIN,enum=CLOCK,enum=ALLEY,enum=LAIR_DRONE"`
}

// Decode parses one live-feed message into a typed event.
//
// Unknown types yield ErrUnknownKind, everything else that cannot become an
// event yields ErrMalformed.
func Decode(msg []byte) (Event, error) {
	var payload Payload
	if err := json.Unmarshal(msg, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return payload.Event()
}

// Event converts the payload into a typed event.
func (p Payload) Event() (Event, error) {
	if p.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	base := NewBase(p.Type)
	switch p.Type {
	case KindSceneSet:
		if p.Scene == nil {
			return nil, missingField(p.Type, "scene")
		}
		return SceneSet{Base: base, Scene: *p.Scene}, nil

	case KindAgentSpeaking:
		if p.AgentID == nil {
			return nil, missingField(p.Type, "agentId")
		}
		return AgentSpeaking{Base: base, AgentID: *p.AgentID, Text: deref(p.Text), Level: p.Level}, nil

	case KindCaption:
		if p.AgentID == nil {
			return nil, missingField(p.Type, "agentId")
		} else if p.Text == nil {
			return nil, missingField(p.Type, "text")
		}
		return Caption{Base: base, AgentID: *p.AgentID, Text: *p.Text}, nil

	case KindEvidenceAdd:
		if p.ID == nil {
			return nil, missingField(p.Type, "id")
		} else if p.Title == nil {
			return nil, missingField(p.Type, "title")
		} else if p.Description == nil {
			return nil, missingField(p.Type, "description")
		}
		return EvidenceAdd{Base: base, ID: *p.ID, Title: *p.Title, Description: *p.Description, X: p.X, Y: p.Y}, nil

	case KindEvidenceLink:
		if p.FromID == nil {
			return nil, missingField(p.Type, "fromId")
		} else if p.ToID == nil {
			return nil, missingField(p.Type, "toId")
		}
		return EvidenceLink{Base: base, FromID: *p.FromID, ToID: *p.ToID}, nil

	case KindTimerStart, KindTimerTick, KindTimerPenalty:
		if p.Seconds == nil {
			return nil, missingField(p.Type, "seconds")
		}
		switch p.Type {
		case KindTimerStart:
			return TimerStart{Base: base, Seconds: *p.Seconds}, nil
		case KindTimerTick:
			return TimerTick{Base: base, Seconds: *p.Seconds}, nil
		default:
			return TimerPenalty{Base: base, Seconds: *p.Seconds}, nil
		}

	case KindLocationConfirmed:
		if p.Label == nil {
			return nil, missingField(p.Type, "label")
		}
		return LocationConfirmed{Base: base, Label: *p.Label, Coordinates: deref(p.Coordinates)}, nil

	case KindRescueSuccess:
		return RescueSuccess{Base: base}, nil
	case KindRescueFail:
		return RescueFail{Base: base}, nil
	case KindMisdirect:
		return Misdirect{Base: base}, nil

	case KindAmbienceSet:
		if p.Track == nil {
			return nil, missingField(p.Type, "track")
		}
		return AmbienceSet{Base: base, Track: *p.Track}, nil
	}

	if name, ok := soundCueName(p.Type); ok {
		return SoundCue{Base: base, Name: name}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, p.Type)
}

// Encode renders a wire event as a live-feed message. Local events cannot be
// encoded.
func Encode(event Event) ([]byte, error) {
	payload, ok := ToPayload(event)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a wire event", ErrUnknownKind, event.Kind())
	}

	return json.Marshal(payload)
}

// ToPayload maps a typed wire event to its wire shape.
func ToPayload(event Event) (Payload, bool) {
	payload := Payload{Type: event.Kind()}
	switch e := event.(type) {
	case SceneSet:
		payload.Scene = &e.Scene
	case AgentSpeaking:
		payload.AgentID = &e.AgentID
		payload.Level = e.Level
		if e.Text != "" {
			payload.Text = &e.Text
		}
	case Caption:
		payload.AgentID, payload.Text = &e.AgentID, &e.Text
	case EvidenceAdd:
		payload.ID, payload.Title, payload.Description = &e.ID, &e.Title, &e.Description
		payload.X, payload.Y = e.X, e.Y
	case EvidenceLink:
		payload.FromID, payload.ToID = &e.FromID, &e.ToID
	case SoundCue:
	case TimerStart:
		payload.Seconds = &e.Seconds
	case TimerTick:
		payload.Seconds = &e.Seconds
	case TimerPenalty:
		payload.Seconds = &e.Seconds
	case LocationConfirmed:
		payload.Label = &e.Label
		if e.Coordinates != "" {
			payload.Coordinates = &e.Coordinates
		}
	case RescueSuccess, RescueFail, Misdirect:
	case AmbienceSet:
		payload.Track = &e.Track
	default:
		return Payload{}, false
	}

	return payload, true
}

func missingField(kind Kind, field string) error {
	return fmt.Errorf("%w: %s requires %q", ErrMalformed, kind, field)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
