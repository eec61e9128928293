// Package layers defines the compositor snapshot data model: Layer and
// Display nodes plus the geometric primitives they carry.
//
// What:
//
//   - Layer: one renderable surface with ownership (ParentID), draw-order
//     (ZOrderRelativeOfID) and display-stack (StackID) references, flags,
//     bounds, color, transform and the visible region computed by the
//     composition engine.
//   - Display: one output (physical, external or virtual) linked to layers
//     through its LayerStackID.
//   - Rect/RectF/Region/Color/Buffer/Transform: the value types dumps carry.
//
// Why a separate package:
//
//   - The hierarchy builder (package snapshot), the differ and the assertion
//     engine all operate on this model; keeping it dependency-free avoids
//     import cycles and keeps the model reusable for custom tooling.
//
// Visibility:
//
//   - Layer.IsVisible and Layer.VisibilityReasons encode the compositor's
//     notion of "contributes pixels": not hidden (directly or via an
//     ancestor), nonzero alpha, valid transform, buffer or color fill
//     present, and a non-empty visible region.
//
// Flat layers become a tree only after hierarchy reconstruction; see the
// snapshot package for the builder that populates Parent, Children and
// ZOrderRelativeOf in place.
package layers
