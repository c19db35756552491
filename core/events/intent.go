package events

// Local events never travel over the wire. They carry player intent and
// bookkeeping so that the session reducer stays the only writer of state.
const (
	// KindRosterSet identifies a replacement of the agent roster.
	KindRosterSet Kind = "local.roster_set"
	// KindAgentMuteSet identifies a player mute toggle for one agent.
	KindAgentMuteSet Kind = "local.agent_mute_set"
	// KindAgentSoloSet identifies a change of the soloed agent.
	KindAgentSoloSet Kind = "local.agent_solo_set"
	// KindAgentVolumeSet identifies a per-agent fine gain change.
	KindAgentVolumeSet Kind = "local.agent_volume_set"
	// KindVolumesSet identifies a change of the three global volumes.
	KindVolumesSet Kind = "local.volumes_set"
	// KindClueSelected identifies the player picking a clue.
	KindClueSelected Kind = "local.clue_selected"
	// KindDeductionSubmitted identifies the player submitting a deduction.
	KindDeductionSubmitted Kind = "local.deduction_submitted"
	// KindSfxConsumed identifies a queued one-shot handed to the mixer.
	KindSfxConsumed Kind = "local.sfx_consumed"
	// KindFlashCleared identifies the renderer acknowledging the flash.
	KindFlashCleared Kind = "local.flash_cleared"
	// KindConnectionChanged identifies a connection status change.
	KindConnectionChanged Kind = "local.connection_changed"
)

type RosterSet struct {
	Base
	Agents []AgentInfo
}

func NewRosterSet(agents ...AgentInfo) RosterSet {
	return RosterSet{Base: NewBase(KindRosterSet), Agents: agents}
}

type AgentMuteSet struct {
	Base
	AgentID string
	Muted   bool
}

func NewAgentMuteSet(agentID string, muted bool) AgentMuteSet {
	return AgentMuteSet{Base: NewBase(KindAgentMuteSet), AgentID: agentID, Muted: muted}
}

// AgentSoloSet solos AgentID. An empty AgentID clears the solo.
type AgentSoloSet struct {
	Base
	AgentID string
}

func NewAgentSoloSet(agentID string) AgentSoloSet {
	return AgentSoloSet{Base: NewBase(KindAgentSoloSet), AgentID: agentID}
}

type AgentVolumeSet struct {
	Base
	AgentID string
	Volume  float64
}

func NewAgentVolumeSet(agentID string, volume float64) AgentVolumeSet {
	return AgentVolumeSet{Base: NewBase(KindAgentVolumeSet), AgentID: agentID, Volume: volume}
}

type VolumesSet struct {
	Base
	Agents   float64
	Ambience float64
	Sfx      float64
}

func NewVolumesSet(agents, ambience, sfx float64) VolumesSet {
	return VolumesSet{Base: NewBase(KindVolumesSet), Agents: agents, Ambience: ambience, Sfx: sfx}
}

type ClueSelected struct {
	Base
	Choice ClueChoice
}

func NewClueSelected(choice ClueChoice) ClueSelected {
	return ClueSelected{Base: NewBase(KindClueSelected), Choice: choice}
}

type DeductionSubmitted struct {
	Base
	Guess DeductionGuess
}

func NewDeductionSubmitted(guess DeductionGuess) DeductionSubmitted {
	return DeductionSubmitted{Base: NewBase(KindDeductionSubmitted), Guess: guess}
}

type SfxConsumed struct {
	Base
	ID string
}

func NewSfxConsumed(id string) SfxConsumed {
	return SfxConsumed{Base: NewBase(KindSfxConsumed), ID: id}
}

type FlashCleared struct{ Base }

func NewFlashCleared() FlashCleared {
	return FlashCleared{Base: NewBase(KindFlashCleared)}
}

type ConnectionChanged struct {
	Base
	Status ConnectionStatus
	Room   string
}

func NewConnectionChanged(status ConnectionStatus, room string) ConnectionChanged {
	return ConnectionChanged{Base: NewBase(KindConnectionChanged), Status: status, Room: room}
}
