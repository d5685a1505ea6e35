// Package events defines the typed coordination event contract.
//
// Event kinds are grouped by owner-facing namespaces:
//
//   - user_input.*    — voice-recognition engine activity and transcripts.
//   - recognition.*   — lifecycle of the listening signal.
//   - response.*      — lifecycle of the processing signal.
//   - playback.*      — lifecycle of the speaking signal.
//   - conversation.*  — host-owned message log notifications.
//
// Semantics used across the package:
//
//   - Interim: mutable point-in-time transcript snapshot that can change
//     until the utterance is finalized.
//   - Final: terminal immutable transcript for the current utterance.
//   - Started/Stopped/Ended: lifecycle boundaries reported by the engine
//     that owns the corresponding signal.
//
// All events are notifications delivered to the coordinator; the coordinator
// never produces events itself, it reacts to them by recomputing permissions,
// reconciling the speech target, and invoking the configured callbacks.
package events
