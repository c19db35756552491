package events

const (
	// KindLocationConfirmed identifies a confirmed victim location.
	KindLocationConfirmed Kind = "LOCATION_CONFIRMED"
	// KindRescueSuccess identifies a successful rescue.
	KindRescueSuccess Kind = "RESCUE_SUCCESS"
	// KindRescueFail identifies a failed rescue.
	KindRescueFail Kind = "RESCUE_FAIL"
	// KindMisdirect identifies the player following a false lead.
	KindMisdirect Kind = "MISDIRECT"
)

// LocationConfirmed names the confirmed location.
type LocationConfirmed struct {
	Base
	Label       string
	Coordinates string
}

// NewLocationConfirmed creates a location confirmed event.
func NewLocationConfirmed(label string) LocationConfirmed {
	return LocationConfirmed{Base: NewBase(KindLocationConfirmed), Label: label}
}

type RescueSuccess struct{ Base }

func NewRescueSuccess() RescueSuccess {
	return RescueSuccess{Base: NewBase(KindRescueSuccess)}
}

type RescueFail struct{ Base }

func NewRescueFail() RescueFail {
	return RescueFail{Base: NewBase(KindRescueFail)}
}

type Misdirect struct{ Base }

func NewMisdirect() Misdirect {
	return Misdirect{Base: NewBase(KindMisdirect)}
}
