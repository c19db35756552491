// Package mixbus is a software implementation of audio.Graph. It mixes voice
// channels, a looping ambience bed and one-shots into mono float32 frames
// pulled by an audio.Device.
package mixbus

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Mohammad-Palla/sherlock-game/core/audio"
)

// maxPending bounds how much queued voice audio a channel keeps while the
// bus is not rendering.
const maxPending = 2 * time.Second

type Bus struct {
	encoding audio.EncodingInfo
	device   audio.Device
	readFile func(string) ([]byte, error)

	mu           sync.Mutex
	running      bool
	nextHandle   audio.ChannelHandle
	channels     map[audio.ChannelHandle]*channel
	ambience     *voice
	ambienceGain float64
	oneShots     []*voice
	assets       map[string][]float32
}

type channel struct {
	pending []float32
	gain    float64
	route   float64
	meter   *meterRing
}

type voice struct {
	samples []float32
	pos     int
	loop    bool
	gain    float64
}

type Option func(*Bus)

// WithDevice renders into device. Without one the bus only mixes on demand
// through Render.
func WithDevice(device audio.Device) Option {
	return func(b *Bus) {
		b.device = device
		b.encoding = device.EncodingInfo()
	}
}

func WithEncodingInfo(info audio.EncodingInfo) Option {
	return func(b *Bus) {
		b.encoding = info
	}
}

// WithFileReader replaces os.ReadFile for loading assets.
func WithFileReader(readFile func(string) ([]byte, error)) Option {
	return func(b *Bus) {
		b.readFile = readFile
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{
		encoding:     audio.GetDefaultEncodingInfo(),
		readFile:     os.ReadFile,
		channels:     map[audio.ChannelHandle]*channel{},
		ambienceGain: 1,
		assets:       map[string][]float32{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) EncodingInfo() audio.EncodingInfo {
	return b.encoding
}

func (b *Bus) CreateChannel() (audio.ChannelHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextHandle++
	b.channels[b.nextHandle] = &channel{gain: 1, route: 1}
	return b.nextHandle, nil
}

func (b *Bus) RemoveChannel(handle audio.ChannelHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.channelLocked(handle); err != nil {
		return err
	}
	delete(b.channels, handle)
	return nil
}

func (b *Bus) Write(handle audio.ChannelHandle, pcm []byte) error {
	samples := audio.Linear16ToFloat32(pcm)

	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.channelLocked(handle)
	if err != nil {
		return err
	}

	ch.pending = append(ch.pending, samples...)
	if limit := b.encoding.Samples(maxPending); limit > 0 && len(ch.pending) > limit {
		ch.pending = ch.pending[len(ch.pending)-limit:]
	}
	return nil
}

func (b *Bus) SetGain(handle audio.ChannelHandle, gain float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.channelLocked(handle)
	if err != nil {
		return err
	}
	ch.gain = gain
	return nil
}

func (b *Bus) SetRouteGain(handle audio.ChannelHandle, gain float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.channelLocked(handle)
	if err != nil {
		return err
	}
	ch.route = gain
	return nil
}

func (b *Bus) AttachMeter(handle audio.ChannelHandle) (audio.Meter, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.channelLocked(handle)
	if err != nil {
		return nil, err
	}
	if ch.meter == nil {
		ch.meter = &meterRing{samples: make([]float32, audio.MeterWindow)}
	}
	return ch.meter, nil
}

func (b *Bus) channelLocked(handle audio.ChannelHandle) (*channel, error) {
	ch, ok := b.channels[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", audio.ErrUnknownChannel, handle)
	}
	return ch, nil
}

func (b *Bus) LoadAmbience(path string) error {
	samples, err := b.load(path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ambience = &voice{samples: samples, loop: true, gain: 1}
	return nil
}

func (b *Bus) StopAmbience() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ambience = nil
}

func (b *Bus) SetAmbienceGain(gain float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ambienceGain = gain
}

func (b *Bus) PlayOneShot(path string, volume float64) error {
	samples, err := b.load(path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return nil
	}
	b.oneShots = append(b.oneShots, &voice{samples: samples, gain: volume})
	return nil
}

// load decodes a raw linear16 asset once and keeps it for later plays.
func (b *Bus) load(path string) ([]float32, error) {
	b.mu.Lock()
	samples, ok := b.assets[path]
	b.mu.Unlock()
	if ok {
		return samples, nil
	}

	data, err := b.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", path, err)
	}
	samples = audio.Linear16ToFloat32(data)
	if len(samples) == 0 {
		return nil, fmt.Errorf("asset %s has no samples", path)
	}

	b.mu.Lock()
	b.assets[path] = samples
	b.mu.Unlock()
	return samples, nil
}

func (b *Bus) Resume() error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = true
	b.mu.Unlock()

	if b.device != nil {
		if err := b.device.Start(b.Render); err != nil {
			b.mu.Lock()
			b.running = false
			b.mu.Unlock()
			return fmt.Errorf("failed to start output device: %w", err)
		}
	}
	logger.Debug("mix bus resumed", "sample_rate", b.encoding.SampleRate)
	return nil
}

func (b *Bus) Suspend() error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = false
	b.oneShots = nil
	b.mu.Unlock()

	if b.device != nil {
		if err := b.device.Stop(); err != nil {
			return fmt.Errorf("failed to stop output device: %w", err)
		}
	}
	return nil
}

// Close suspends the bus and releases the output device.
func (b *Bus) Close() error {
	if err := b.Suspend(); err != nil {
		logger.Warn("failed to suspend mix bus", "error", err)
	}
	if b.device != nil {
		return b.device.Close()
	}
	return nil
}

// Render mixes the next len(out) frames into out.
func (b *Bus) Render(out []float32) {
	clear(out)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.channels {
		n := min(len(out), len(ch.pending))
		gain := float32(ch.gain * ch.route)
		for i, sample := range ch.pending[:n] {
			out[i] += sample * gain
		}
		if ch.meter != nil {
			ch.meter.write(ch.pending[:n])
			ch.meter.silence(len(out) - n)
		}
		ch.pending = ch.pending[n:]
	}

	if b.ambience != nil {
		b.ambience.mixInto(out, float32(b.ambienceGain))
	}

	playing := b.oneShots[:0]
	for _, shot := range b.oneShots {
		if shot.mixInto(out, 1) {
			playing = append(playing, shot)
		}
	}
	clear(b.oneShots[len(playing):])
	b.oneShots = playing

	for i, sample := range out {
		out[i] = max(-1, min(1, sample))
	}
}

// mixInto adds the voice to out and reports whether it has more to play.
func (v *voice) mixInto(out []float32, gain float32) bool {
	gain *= float32(v.gain)
	for i := range out {
		if v.pos >= len(v.samples) {
			if !v.loop {
				return false
			}
			v.pos = 0
		}
		out[i] += v.samples[v.pos] * gain
		v.pos++
	}
	return v.loop || v.pos < len(v.samples)
}
