package events

import "github.com/invopop/jsonschema"

// Schema describes the live-feed message shape.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Payload{})
	schema.Title = "Session director event"

	if typeProperty, ok := schema.Properties.Get("type"); ok {
		for _, kind := range WireKinds() {
			typeProperty.Enum = append(typeProperty.Enum, string(kind))
		}
	}

	return schema
}

// WireKinds lists every kind that may arrive from the live feed.
func WireKinds() []Kind {
	kinds := []Kind{
		KindSceneSet,
		KindAgentSpeaking,
		KindCaption,
		KindEvidenceAdd,
		KindEvidenceLink,
	}
	for _, name := range SfxNames {
		kinds = append(kinds, SoundCueKind(name))
	}
	return append(kinds,
		KindTimerStart,
		KindTimerTick,
		KindTimerPenalty,
		KindLocationConfirmed,
		KindRescueSuccess,
		KindRescueFail,
		KindMisdirect,
		KindAmbienceSet,
	)
}
