package mixer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

// ErrAssetUnavailable marks an asset that is missing or empty.
var ErrAssetUnavailable = errors.New("audio asset unavailable")

const assetExt = ".pcm"

var ambienceFiles = map[events.AmbienceTrack]string{
	events.AmbienceRain:      "ambience_rain",
	events.AmbienceClock:     "ambience_clock",
	events.AmbienceAlley:     "ambience_alley",
	events.AmbienceLairDrone: "ambience_lair",
}

// AmbiencePath is the asset of an ambience track under dir.
func AmbiencePath(dir string, track events.AmbienceTrack) (string, bool) {
	name, ok := ambienceFiles[track]
	if !ok {
		return "", false
	}
	return filepath.Join(dir, name+assetExt), true
}

// SfxPath is the asset of a one-shot cue under dir.
func SfxPath(dir string, name events.SfxName) string {
	return filepath.Join(dir, "sfx_"+strings.ToLower(string(name))+assetExt)
}

// Checker reports whether an asset can be played.
type Checker interface {
	Check(ctx context.Context, path string) error
}

// FileChecker accepts existing, non-empty regular files.
type FileChecker struct{}

func (FileChecker) Check(_ context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrAssetUnavailable, path)
	}
	return nil
}

// availableLocked resolves availability once per path. Negative results are
// sticky for the engine lifetime.
func (e *Engine) availableLocked(ctx context.Context, path string) bool {
	if available, ok := e.availability[path]; ok {
		return available
	}

	ctx, span := tracer.Start(ctx, "check asset")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	err := e.checker.Check(ctx, path)
	e.availability[path] = err == nil
	if err != nil {
		span.RecordError(err)
		logger.Warn("audio asset unavailable", "path", path, "error", err)
	}
	return err == nil
}
