// Package config loads director settings from an optional yaml file, a
// .env file and DIRECTOR__ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DIRECTOR__"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Mode    string        `koanf:"mode"` // live, scripted
	Room    string        `koanf:"room"`
	Backend BackendConfig `koanf:"backend"`
	Feed    FeedConfig    `koanf:"feed"`
	Assets  AssetsConfig  `koanf:"assets"`
	Audio   AudioConfig   `koanf:"audio"`
	Volumes VolumesConfig `koanf:"volumes"`
	Meter   MeterConfig   `koanf:"meter"`
	// Seed fixes evidence placement. Zero picks a random seed.
	Seed uint64 `koanf:"seed"`
}

type BackendConfig struct {
	URL string `koanf:"url"`
}

// FeedConfig points at the live event feed. An empty URL reuses the
// backend URL.
type FeedConfig struct {
	URL string `koanf:"url"`
}

type AssetsConfig struct {
	Dir string `koanf:"dir"`
}

type AudioConfig struct {
	Backend    string `koanf:"backend"` // miniaudio, portaudio, none
	SampleRate int    `koanf:"sample_rate"`
	BufferSize int    `koanf:"buffer_size"`
}

type VolumesConfig struct {
	Agents   float64 `koanf:"agents"`
	Ambience float64 `koanf:"ambience"`
	Sfx      float64 `koanf:"sfx"`
}

type MeterConfig struct {
	FPS int `koanf:"fps"`
}

var defaults = map[string]any{
	"mode":              "scripted",
	"backend.url":       "http://localhost:3000",
	"assets.dir":        "assets/audio",
	"audio.backend":     "miniaudio",
	"audio.sample_rate": 48000,
	"audio.buffer_size": 480,
	"volumes.agents":    0.9,
	"volumes.ambience":  0.6,
	"volumes.sfx":       0.8,
	"meter.fps":         60,
}

// Load reads path when it exists, then .env, then the environment. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case "live", "scripted":
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}

	switch c.Audio.Backend {
	case "miniaudio", "portaudio", "none":
	default:
		return fmt.Errorf("%w: audio backend %q", ErrInvalid, c.Audio.Backend)
	}

	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	if c.Meter.FPS <= 0 {
		return fmt.Errorf("%w: meter fps %d", ErrInvalid, c.Meter.FPS)
	}
	return nil
}

// FeedURL is the base URL of the live event feed.
func (c Config) FeedURL() string {
	if c.Feed.URL != "" {
		return c.Feed.URL
	}
	return c.Backend.URL
}
