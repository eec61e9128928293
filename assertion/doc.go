// Package assertion evaluates named predicates over compositor snapshots
// and traces, the building blocks of UI-transition checks.
//
// What:
//
//   - Assertion: a named predicate over one snapshot (LayerExists,
//     LayerIsVisible, LayerIsInvisible, VisibleRegionCovers, Not).
//   - Verify: an assertion must hold on every entry of a trace.
//   - Sequence: a "then" chain describing a transition — each step holds
//     for a contiguous run of entries, runs appear in order, and together
//     they cover the whole trace. Example: launcher visible, then both
//     launcher and app visible (the cross-fade), then app visible alone.
//
// Failures wrap ErrAssertionFailed and name the first offending entry by
// its elapsed timestamp, the assertion involved, and — for visibility
// checks — the per-layer reasons reported by the layers package.
package assertion
