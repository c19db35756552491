package events

import "strings"

const sfxKindPrefix = "SFX_"

// SoundCueKind returns the wire kind of a one-shot cue, e.g. SFX_GUNSHOT.
func SoundCueKind(name SfxName) Kind {
	return Kind(sfxKindPrefix + string(name))
}

// soundCueName resolves a wire kind back to a known cue.
func soundCueName(kind Kind) (SfxName, bool) {
	name, ok := strings.CutPrefix(string(kind), sfxKindPrefix)
	if !ok {
		return "", false
	}
	for _, known := range SfxNames {
		if SfxName(name) == known {
			return known, true
		}
	}
	return "", false
}

// SoundCue requests a one-shot sound effect.
type SoundCue struct {
	Base
	Name SfxName
}

// NewSoundCue creates a one-shot cue event.
func NewSoundCue(name SfxName) SoundCue {
	return SoundCue{Base: NewBase(SoundCueKind(name)), Name: name}
}
