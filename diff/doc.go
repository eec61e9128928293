// Package diff computes structural differences between two compositor
// snapshots: layers and displays added, removed, or changed between frames.
//
// Matching is by id, never by position, so re-ordered dumps with identical
// content diff clean. Attribute changes are rendered with go-cmp, with the
// relational back-references (Parent, Children, ZOrderRelativeOf) excluded:
// they are derived from the id fields and cyclic.
//
// Typical use is regression checks between a captured frame and a golden
// frame, or inspecting what a UI transition changed between two entries of
// a trace.
package diff
