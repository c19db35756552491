package main

import (
	"fmt"

	"github.com/Mohammad-Palla/sherlock-game/core/audio"
	"github.com/Mohammad-Palla/sherlock-game/core/audio/miniaudio"
	"github.com/Mohammad-Palla/sherlock-game/core/audio/mixbus"
	"github.com/Mohammad-Palla/sherlock-game/core/audio/portaudio"
	"github.com/Mohammad-Palla/sherlock-game/internal/config"
)

// newOutputDevice opens the configured output. A nil device means the mix
// is rendered nowhere, which still keeps metering and state in sync.
func newOutputDevice(cfg config.AudioConfig) (audio.Device, error) {
	switch cfg.Backend {
	case "miniaudio":
		client, err := miniaudio.NewClient(cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("failed to open miniaudio output: %w", err)
		}
		return client, nil
	case "portaudio":
		client, err := portaudio.NewClient(cfg.SampleRate, cfg.BufferSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open portaudio output: %w", err)
		}
		return client, nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown audio backend %q", cfg.Backend)
}

func newMixBus(cfg config.AudioConfig) *mixbus.Bus {
	device, err := newOutputDevice(cfg)
	if err != nil {
		logger.Warn("audio output unavailable, mixing silently", "error", err)
	}
	if device == nil {
		return mixbus.New(mixbus.WithEncodingInfo(audio.EncodingInfo{
			SampleRate: cfg.SampleRate,
			Format:     audio.EncodingFloat32,
		}))
	}
	return mixbus.New(mixbus.WithDevice(device))
}
