package events

// SceneID names a narrative scene.
type SceneID string

const (
	SceneBoot       SceneID = "BOOT"
	SceneCrime      SceneID = "CRIME_SCENE"
	SceneStudy      SceneID = "STUDY"
	SceneLair       SceneID = "LAIR"
	SceneStudyNoir  SceneID = "STUDY_NOIR"
	SceneStreetBait SceneID = "STREET_BAIT"
	SceneUnderpass  SceneID = "UNDERPASS"
)

// SceneCaseIntro is the scene whose entry resets every investigation-scoped
// field of the session.
const SceneCaseIntro = SceneStudyNoir

// AmbienceTrack names a looping background bed.
type AmbienceTrack string

const (
	AmbienceRain      AmbienceTrack = "RAIN"
	AmbienceClock     AmbienceTrack = "CLOCK"
	AmbienceAlley     AmbienceTrack = "ALLEY"
	AmbienceLairDrone AmbienceTrack = "LAIR_DRONE"
)

// SfxName names a one-shot sound effect.
type SfxName string

const (
	SfxGunshot    SfxName = "GUNSHOT"
	SfxTelegram   SfxName = "TELEGRAM"
	SfxHeartbeat  SfxName = "HEARTBEAT"
	SfxSiren      SfxName = "SIREN"
	SfxCallDrop   SfxName = "CALL_DROP"
	SfxFootsteps  SfxName = "FOOTSTEPS"
	SfxDoorRattle SfxName = "DOOR_RATTLE"
)

// SfxNames lists every one-shot cue in wire order.
var SfxNames = []SfxName{
	SfxGunshot,
	SfxTelegram,
	SfxHeartbeat,
	SfxSiren,
	SfxCallDrop,
	SfxFootsteps,
	SfxDoorRattle,
}

type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFail    Outcome = "FAIL"
)

type ClueChoice string

const (
	ClueA ClueChoice = "A"
	ClueB ClueChoice = "B"
	ClueC ClueChoice = "C"
)

type DeductionGuess string

const (
	DeductionRiverUnderpass DeductionGuess = "RIVER_UNDERPASS"
	DeductionCathedral      DeductionGuess = "CATHEDRAL"
	DeductionOther          DeductionGuess = "OTHER"
)

type ConnectionStatus string

const (
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionConnecting   ConnectionStatus = "connecting"
	ConnectionConnected    ConnectionStatus = "connected"
)

// AgentInfo is the roster entry of a voiced participant.
type AgentInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
