// Package trace holds ordered sequences of compositor snapshots and
// answers time queries over them.
//
// What:
//
//   - Trace: immutable, strictly ascending sequence of snapshot.Snapshot
//     entries.
//   - Queries: exact elapsed-time lookup (EntryAt), at-or-before lookup
//     (EntryAtOrBefore), vsync lookup (ByVsync), boundary accessors
//     (First/Last) and interval slicing (Slice).
//
// Errors:
//
//   - ErrEmptyTrace: query on a trace with no entries.
//   - ErrOutOfOrder: New received entries out of elapsed-time order.
//   - ErrEntryNotFound: no entry matches the requested time or vsync.
//
// Complexity:
//
//   - Time lookups are O(log n) by binary search; vsync lookup is O(n).
package trace
