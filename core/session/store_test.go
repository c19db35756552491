package session

import (
	"testing"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore(newTestReducer())

	var scenes []events.SceneID
	unsubscribe := store.Subscribe(func(state State) {
		scenes = append(scenes, state.CurrentScene)
	})

	store.Dispatch(events.NewSceneSet(events.SceneStudy))
	store.Dispatch(events.NewSceneSet(events.SceneLair))
	unsubscribe()
	store.Dispatch(events.NewSceneSet(events.SceneUnderpass))

	if len(scenes) != 2 || scenes[0] != events.SceneStudy || scenes[1] != events.SceneLair {
		t.Fatalf("expected [STUDY LAIR], got %v", scenes)
	}
	if got := store.Snapshot().CurrentScene; got != events.SceneUnderpass {
		t.Fatalf("expected store to keep reducing after unsubscribe, got %q", got)
	}
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	store := NewStore(newTestReducer())
	store.Dispatch(
		events.NewRosterSet(events.AgentInfo{ID: "watson", Name: "Dr. Watson"}),
		events.NewEvidenceAdd("clue_a", "Clue A", "Citrus"),
		events.NewTimerStart(60),
	)

	snapshot := store.Snapshot()
	snapshot.Evidence[0].Title = "tampered"
	snapshot.Agents["watson"] = Agent{ID: "watson", Muted: true}
	snapshot.Timer.RemainingSeconds = 1

	fresh := store.Snapshot()
	if fresh.Evidence[0].Title != "Clue A" {
		t.Fatalf("expected evidence title untouched, got %q", fresh.Evidence[0].Title)
	}
	if fresh.Agents["watson"].Muted {
		t.Fatalf("expected agent untouched")
	}
	if fresh.Timer.RemainingSeconds != 60 {
		t.Fatalf("expected timer untouched, got %d", fresh.Timer.RemainingSeconds)
	}
}

func TestStoreStartsFromEmptyState(t *testing.T) {
	state := NewStore(nil).Snapshot()

	if state.CurrentScene != events.SceneBoot || state.Ambience != events.AmbienceRain {
		t.Fatalf("unexpected initial scene/ambience %q/%q", state.CurrentScene, state.Ambience)
	}
	if state.Volumes != DefaultVolumes {
		t.Fatalf("expected default volumes, got %+v", state.Volumes)
	}
	if state.Timer != nil || state.Misdirected {
		t.Fatalf("expected no timer and no misdirect")
	}
}
