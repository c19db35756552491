package events

const (
	// KindSceneSet identifies a scene change.
	KindSceneSet Kind = "SCENE_SET"
	// KindAmbienceSet identifies a change of the ambience bed.
	KindAmbienceSet Kind = "AMBIENCE_SET"
)

// SceneSet moves the session to another scene.
type SceneSet struct {
	Base
	Scene SceneID
}

// NewSceneSet creates a scene change event.
func NewSceneSet(scene SceneID) SceneSet {
	return SceneSet{Base: NewBase(KindSceneSet), Scene: scene}
}

// AmbienceSet replaces the looping ambience track.
type AmbienceSet struct {
	Base
	Track AmbienceTrack
}

// NewAmbienceSet creates an ambience change event.
func NewAmbienceSet(track AmbienceTrack) AmbienceSet {
	return AmbienceSet{Base: NewBase(KindAmbienceSet), Track: track}
}
