package eventsource

import "github.com/Mohammad-Palla/sherlock-game/core/schedule"

type Option func(*Source)

func WithClock(clock schedule.Clock) Option {
	return func(s *Source) {
		s.clock = clock
	}
}

func WithScript(script Script) Option {
	return func(s *Source) {
		s.script = script
	}
}

func WithRoom(room string) Option {
	return func(s *Source) {
		s.feed.room = room
	}
}

// WithFeedURL sets the base URL of the live session service.
func WithFeedURL(baseURL string) Option {
	return func(s *Source) {
		s.feed.baseURL = baseURL
	}
}

func WithDialer(dial Dialer) Option {
	return func(s *Source) {
		s.feed.dial = dial
	}
}

// WithFeedLostCallback is called when a live feed ends without Stop being
// called. The source is no longer running at that point.
func WithFeedLostCallback(callback func(error)) Option {
	return func(s *Source) {
		s.onFeedLost = callback
	}
}
