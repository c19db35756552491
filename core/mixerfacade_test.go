package director

import (
	"context"
	"testing"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

func TestAudioMixTreatsNilMixersAsUnconfigured(t *testing.T) {
	var typedNil *fakeMixer

	testCases := []struct {
		name       string
		mixer      Mixer
		configured bool
	}{
		{name: "nil", mixer: nil},
		{name: "typed nil", mixer: typedNil},
		{name: "configured", mixer: newFakeMixer(), configured: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var mix audioMix
			mix.Set(tc.mixer)
			if got := mix.isConfigured(); got != tc.configured {
				t.Fatalf("expected configured %v, got %v", tc.configured, got)
			}

			if err := mix.Start(context.Background()); err != nil {
				t.Fatalf("expected start to succeed, got %v", err)
			}
			mix.SetAmbience(context.Background(), events.AmbienceClock)
			mix.PlaySfx(context.Background(), events.SfxGunshot)
			if err := mix.AttachAgent("watson"); err != nil {
				t.Fatalf("expected attach to succeed, got %v", err)
			}
			mix.Stop()
		})
	}
}

func TestDirectorRunsWithoutMixer(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("expected director to build, got %v", err)
	}
	defer d.Close()

	d.SetAgentMuted("sherlock", true)
	if d.Snapshot().Connection.Status != events.ConnectionDisconnected {
		t.Fatalf("expected disconnected before connect, got %q", d.Snapshot().Connection.Status)
	}
}

func TestProjectSettings(t *testing.T) {
	d, _, _ := newTestDirector(t)
	d.Connect(context.Background())
	d.SetAgentMuted("watson", true)
	d.SetSoloAgent("moriarty")

	settings := Project(d.Snapshot())
	if settings.Solo != "moriarty" {
		t.Fatalf("expected moriarty solo, got %q", settings.Solo)
	}
	if !settings.Agents["watson"].Muted {
		t.Fatalf("expected watson muted")
	}
	if settings.Ambience != events.AmbienceRain {
		t.Fatalf("expected rain ambience, got %q", settings.Ambience)
	}
}
