// Package layertrace is a host-side toolkit for display-compositor trace
// dumps: rebuild per-frame layer hierarchies, query them over time, diff
// frames, and assert UI-transition properties.
//
// 🚀 What is layertrace?
//
//	A small, deterministic library for turning flat compositor dumps into
//	checkable object models:
//		• layers    — the data model: Layer, Display, geometry, visibility
//		• snapshot  — hierarchy reconstruction: parents, z-order links,
//		              root promotion, display filtering, orphan policies
//		• trace     — ordered snapshots with time and vsync queries
//		• diff      — structural frame-to-frame differences
//		• assertion — visibility predicates and sequential transition checks
//		• dump      — JSON/YAML dump documents in layertrace's own schema
//
// ✨ Why layertrace?
//
//   - Deterministic – fixed-order build pipeline, input order preserved
//   - Strict by default – duplicate ids and orphan layers fail loudly,
//     with opt-in policies for known-dirty captures
//   - Pure Go – no cgo, in-memory, no platform bindings
//
// Quick sketch: a launch transition as a chain of phases:
//
//	launcher visible ──▶ both visible ──▶ app visible
//
// checked with assertion.NewSequence().Then(...).Evaluate(trace).
//
// The cmd/layertrace CLI wraps the same pipeline for shell use: show a
// dump as a tree, diff two dumps, or run checks over a capture series.
package layertrace
