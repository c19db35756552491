package events

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeBuildsTypedEvents(t *testing.T) {
	event, err := Decode([]byte(`{"type":"EVIDENCE_ADD","id":"clue_a","title":"Clue A","description":"Citrus","x":18,"y":28}`))
	if err != nil {
		t.Fatalf("expected evidence payload to decode, got %v", err)
	}

	evidence, ok := event.(EvidenceAdd)
	if !ok {
		t.Fatalf("expected EvidenceAdd, got %T", event)
	}
	if evidence.ID != "clue_a" || evidence.Title != "Clue A" || evidence.Description != "Citrus" {
		t.Fatalf("unexpected evidence fields: %+v", evidence)
	}
	if evidence.X == nil || *evidence.X != 18 || evidence.Y == nil || *evidence.Y != 28 {
		t.Fatalf("expected position 18,28, got %v,%v", evidence.X, evidence.Y)
	}
}

func TestDecodeSoundCue(t *testing.T) {
	event, err := Decode([]byte(`{"type":"SFX_CALL_DROP"}`))
	if err != nil {
		t.Fatalf("expected cue to decode, got %v", err)
	}

	cue, ok := event.(SoundCue)
	if !ok || cue.Name != SfxCallDrop {
		t.Fatalf("expected CALL_DROP cue, got %#v", event)
	}
}

func TestDecodeOptionalSpeakingLevel(t *testing.T) {
	event, err := Decode([]byte(`{"type":"AGENT_SPEAKING","agentId":"watson"}`))
	if err != nil {
		t.Fatalf("expected speaking payload without level to decode, got %v", err)
	}

	if speaking := event.(AgentSpeaking); speaking.Level != nil {
		t.Fatalf("expected nil level, got %v", *speaking.Level)
	}
}

func TestDecodeRejectsInvalidPayloads(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected error
	}{
		{name: "not json", payload: `{"type":`, expected: ErrMalformed},
		{name: "array", payload: `[1,2]`, expected: ErrMalformed},
		{name: "missing type", payload: `{"scene":"STUDY"}`, expected: ErrMalformed},
		{name: "scene without scene", payload: `{"type":"SCENE_SET"}`, expected: ErrMalformed},
		{name: "caption without text", payload: `{"type":"CAPTION","agentId":"watson"}`, expected: ErrMalformed},
		{name: "evidence without title", payload: `{"type":"EVIDENCE_ADD","id":"x","description":"d"}`, expected: ErrMalformed},
		{name: "link without target", payload: `{"type":"LINK_EVIDENCE","fromId":"a"}`, expected: ErrMalformed},
		{name: "penalty without seconds", payload: `{"type":"TIMER_PENALTY"}`, expected: ErrMalformed},
		{name: "fractional seconds", payload: `{"type":"TIMER_TICK","seconds":1.5}`, expected: ErrMalformed},
		{name: "ambience without track", payload: `{"type":"AMBIENCE_SET"}`, expected: ErrMalformed},
		{name: "unknown kind", payload: `{"type":"WEATHER_REPORT"}`, expected: ErrUnknownKind},
		{name: "unknown cue", payload: `{"type":"SFX_TRUMPET"}`, expected: ErrUnknownKind},
		{name: "local kind", payload: `{"type":"local.sfx_consumed","id":"x"}`, expected: ErrUnknownKind},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Decode([]byte(testCase.payload))
			if !errors.Is(err, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, err)
			}
		})
	}
}

func TestEncodeDecodeKeepsWireFields(t *testing.T) {
	original := NewLocationConfirmed("Riverside Service Underpass - Gate 3")
	original.Coordinates = "51.5,-0.1"

	msg, err := Encode(original)
	if err != nil {
		t.Fatalf("expected encode to succeed, got %v", err)
	}
	decoded, err := Decode(msg)
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}

	location := decoded.(LocationConfirmed)
	if location.Label != original.Label || location.Coordinates != original.Coordinates {
		t.Fatalf("expected %+v, got %+v", original, location)
	}
}

func TestEncodeRejectsLocalEvents(t *testing.T) {
	if _, err := Encode(NewAgentMuteSet("watson", true)); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected local event to be rejected, got %v", err)
	}
}

func TestSchemaListsWireKinds(t *testing.T) {
	raw, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("expected schema to marshal, got %v", err)
	}

	var decoded struct {
		Properties map[string]struct {
			Enum []string `json:"enum"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("expected schema json to unmarshal, got %v", err)
	}

	enum := decoded.Properties["type"].Enum
	if len(enum) != len(WireKinds()) {
		t.Fatalf("expected %d type values, got %d", len(WireKinds()), len(enum))
	}
	if _, ok := decoded.Properties["agentId"]; !ok {
		t.Fatalf("expected agentId property in schema")
	}
}
