package events

const (
	// KindEvidenceAdd identifies a new evidence card.
	KindEvidenceAdd Kind = "EVIDENCE_ADD"
	// KindEvidenceLink identifies a link drawn between two evidence cards.
	KindEvidenceLink Kind = "LINK_EVIDENCE"
)

// EvidenceAdd pins an evidence card to the board. X and Y are board
// percentages; nil coordinates are assigned by the reducer.
type EvidenceAdd struct {
	Base
	ID          string
	Title       string
	Description string
	X           *float64
	Y           *float64
}

// NewEvidenceAdd creates an evidence event without a board position.
func NewEvidenceAdd(id, title, description string) EvidenceAdd {
	return EvidenceAdd{Base: NewBase(KindEvidenceAdd), ID: id, Title: title, Description: description}
}

// NewEvidenceAddAt creates an evidence event pinned at x, y.
func NewEvidenceAddAt(id, title, description string, x, y float64) EvidenceAdd {
	event := NewEvidenceAdd(id, title, description)
	event.X, event.Y = &x, &y
	return event
}

// EvidenceLink connects two evidence cards.
type EvidenceLink struct {
	Base
	FromID string
	ToID   string
}

// NewEvidenceLink creates an evidence link event.
func NewEvidenceLink(fromID, toID string) EvidenceLink {
	return EvidenceLink{Base: NewBase(KindEvidenceLink), FromID: fromID, ToID: toID}
}
