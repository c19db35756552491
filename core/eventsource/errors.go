package eventsource

import "errors"

var (
	// ErrNoRoom is returned when live mode is started without a room.
	ErrNoRoom = errors.New("live mode requires a room")
	// ErrUnknownMode is returned for modes other than live and scripted.
	ErrUnknownMode = errors.New("unknown event source mode")
)
