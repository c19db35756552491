// Package events defines the typed narrative event contract of the session
// director.
//
// Wire events arrive from the live feed (one JSON object per message, see
// [Payload]) or are produced by the rehearsal timeline. Their kinds are the
// upper-case tags used on the wire:
//
//   - SCENE_SET, AMBIENCE_SET: scene and ambience bed changes.
//   - AGENT_SPEAKING, CAPTION: speaking level and spoken lines.
//   - EVIDENCE_ADD, LINK_EVIDENCE: evidence board updates.
//   - SFX_*: one-shot sound cues (GUNSHOT, TELEGRAM, HEARTBEAT, SIREN,
//     CALL_DROP, FOOTSTEPS, DOOR_RATTLE).
//   - TIMER_START, TIMER_TICK, TIMER_PENALTY: the case countdown.
//   - LOCATION_CONFIRMED, RESCUE_SUCCESS, RESCUE_FAIL, MISDIRECT: case progress.
//
// Local events (kinds prefixed with "local.") carry player intent such as
// mute, solo and volume changes or clue selection. They are reduced like any
// other event but never decoded from or encoded to the wire.
//
// Events are immutable values and are delivered once.
package events
