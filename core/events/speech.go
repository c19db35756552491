package events

const (
	// KindAgentSpeaking identifies a speaking level update for an agent.
	KindAgentSpeaking Kind = "AGENT_SPEAKING"
	// KindCaption identifies a line of spoken text.
	KindCaption Kind = "CAPTION"
)

// AgentSpeaking reports speaking activity for an agent. A nil Level keeps the
// agent's previous level.
type AgentSpeaking struct {
	Base
	AgentID string
	Text    string
	Level   *float64
}

// NewAgentSpeaking creates an agent speaking event with a level.
func NewAgentSpeaking(agentID string, level float64) AgentSpeaking {
	return AgentSpeaking{Base: NewBase(KindAgentSpeaking), AgentID: agentID, Level: &level}
}

// Caption carries a line spoken by an agent.
type Caption struct {
	Base
	AgentID string
	Text    string
}

// NewCaption creates a caption event.
func NewCaption(agentID, text string) Caption {
	return Caption{Base: NewBase(KindCaption), AgentID: agentID, Text: text}
}
