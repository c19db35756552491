package events

const (
	// KindTimerStart identifies a new authoritative countdown.
	KindTimerStart Kind = "TIMER_START"
	// KindTimerTick identifies a countdown update.
	KindTimerTick Kind = "TIMER_TICK"
	// KindTimerPenalty identifies seconds deducted from the countdown.
	KindTimerPenalty Kind = "TIMER_PENALTY"
)

// TimerStart starts a countdown of Seconds.
type TimerStart struct {
	Base
	Seconds int
}

// NewTimerStart creates a timer start event.
func NewTimerStart(seconds int) TimerStart {
	return TimerStart{Base: NewBase(KindTimerStart), Seconds: seconds}
}

// TimerTick sets the remaining seconds.
type TimerTick struct {
	Base
	Seconds int
}

// NewTimerTick creates a timer tick event.
func NewTimerTick(seconds int) TimerTick {
	return TimerTick{Base: NewBase(KindTimerTick), Seconds: seconds}
}

// TimerPenalty deducts Seconds from the remaining time.
type TimerPenalty struct {
	Base
	Seconds int
}

// NewTimerPenalty creates a timer penalty event.
func NewTimerPenalty(seconds int) TimerPenalty {
	return TimerPenalty{Base: NewBase(KindTimerPenalty), Seconds: seconds}
}
