package audio

import "errors"

// ErrUnknownChannel is returned for handles the graph did not create.
var ErrUnknownChannel = errors.New("unknown audio channel")

// ChannelHandle identifies a channel created by a Graph.
type ChannelHandle uint64

// Graph is a mixing graph: voice channels with a gate gain and a separate
// routing gain, one looping ambience bed, and fire-and-forget one-shots.
type Graph interface {
	CreateChannel() (ChannelHandle, error)
	// RemoveChannel drops a channel with its pending audio and meter.
	RemoveChannel(handle ChannelHandle) error
	// Write queues linear16 samples for playback on a channel.
	Write(handle ChannelHandle, pcm []byte) error
	SetGain(handle ChannelHandle, gain float64) error
	SetRouteGain(handle ChannelHandle, gain float64) error
	// AttachMeter taps the channel signal ahead of both gain stages.
	AttachMeter(handle ChannelHandle) (Meter, error)

	// LoadAmbience replaces the looping ambience bed.
	LoadAmbience(path string) error
	StopAmbience()
	SetAmbienceGain(gain float64)
	PlayOneShot(path string, volume float64) error

	Resume() error
	// Suspend halts output and drops playing one-shots.
	Suspend() error
}

// Meter exposes the most recent samples of a channel.
type Meter interface {
	// Read copies up to len(dst) of the latest samples, oldest first, and
	// returns how many were copied.
	Read(dst []float32) int
}

// Device is an output that pulls mixed mono float32 frames.
type Device interface {
	// Start begins playback. render fills the whole buffer on every call.
	Start(render func(out []float32)) error
	Stop() error
	Close() error
	EncodingInfo() EncodingInfo
}
