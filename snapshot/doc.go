// Package snapshot reconstructs a per-frame layer hierarchy from a flat
// compositor dump and exposes it as an immutable Snapshot.
//
// What:
//
//   - Builder: turns flat layers + displays + capture metadata into one
//     Snapshot, resolving parent/child ownership and the independent
//     z-order-relative linkage, promoting roots, and filtering roots and
//     displays that do not belong on screen.
//   - Snapshot: the immutable result; forest traversal (Flatten), lookups
//     by id and name, visible-layer queries, and tree rendering.
//
// Build pipeline (fixed order, deterministic):
//
//  1. Deduplicate layers by id in input order; the duplicate policy decides
//     collisions (default: fail with DuplicateError).
//  2. Resolve each layer's parent id; unresolved layers enter the orphan
//     working set.
//  3. Resolve z-order-relative ids; a dangling target is recorded as the
//     raw id and never fails the build.
//  4. Promote roots: the first orphan in input order is the canonical root
//     and same-parent-id orphans become sibling roots.
//  5. Filter: roots in stacks with no display (opt-in), virtual-display
//     roots and displays (opt-in), off-display roots (always, unless the
//     display list is empty — legacy traces carry no display metadata).
//  6. Remaining orphans answer to the orphan policy; any rejection aborts
//     the build with an OrphanError naming the layer and its parent id.
//  7. Emit the Snapshot.
//
// Errors:
//
//   - ErrDuplicateLayer / DuplicateError: layer id collision.
//   - ErrOrphanLayer / OrphanError: unresolved parent rejected by policy.
//   - ErrBuilderReused: Build called twice on the same Builder.
//
// Concurrency:
//
//   - Builders are single-use and not goroutine-safe; Build mutates the
//     input layers in place (children, parent and z-order back-references).
//   - Snapshots are immutable after Build and safe for concurrent reads.
package snapshot
