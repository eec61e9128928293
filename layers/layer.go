package layers

import (
	"fmt"
	"strings"
)

// NoParent is the parent id compositors emit for layers that are
// top-level by declaration rather than by a missing ancestor.
const NoParent int64 = -1

// Layer state flags, as emitted by the compositor.
const (
	// FlagHidden marks a layer (and its subtree) as not rendered.
	FlagHidden uint32 = 1 << 0
	// FlagOpaque marks the layer contents as fully opaque.
	FlagOpaque uint32 = 1 << 1
	// FlagSecure excludes the layer from screen captures.
	FlagSecure uint32 = 1 << 7
)

// Layer is one renderable surface node of a per-frame compositor snapshot.
//
// The relational fields (Parent, Children, ZOrderRelativeOf) start nil and
// are populated in place during hierarchy reconstruction; everything else is
// carried through untouched. A Layer belongs to exactly one snapshot.
type Layer struct {
	// ID uniquely identifies this layer within its snapshot.
	ID int64
	// Name is the compositor-assigned debug name (e.g. "StatusBar#0").
	Name string
	// ParentID references the owning layer, or NoParent for declared roots.
	// It may reference an id absent from the snapshot (an orphan).
	ParentID int64
	// ZOrderRelativeOfID references the layer this one is z-ordered against,
	// independent of parent/child ownership. NoParent means unset.
	ZOrderRelativeOfID int64
	// StackID identifies the display stack the layer belongs to.
	StackID uint32
	// Z is the layer's z position within its ordering scope.
	Z int32
	// Flags is a bitmask of Flag* values.
	Flags uint32

	Bounds        RectF
	Color         Color
	Transform     Transform
	VisibleRegion Region
	ActiveBuffer  Buffer
	CornerRadius  float32
	ShadowRadius  float32

	// Parent is the resolved owner; nil for roots and orphans.
	Parent *Layer
	// Children holds resolved child layers in input order.
	Children []*Layer
	// ZOrderRelativeOf is the resolved z-order target; nil when
	// ZOrderRelativeOfID is unset or dangling.
	ZOrderRelativeOf *Layer
}

// IsRoot reports whether the layer has no resolved parent.
func (l *Layer) IsRoot() bool { return l.Parent == nil }

// IsHiddenByPolicy reports whether the compositor flagged the layer hidden.
func (l *Layer) IsHiddenByPolicy() bool { return l.Flags&FlagHidden != 0 }

// IsHiddenByParent reports whether any resolved ancestor carries the hidden
// flag, which hides the whole subtree regardless of this layer's own state.
func (l *Layer) IsHiddenByParent() bool {
	for p := l.Parent; p != nil; p = p.Parent {
		if p.IsHiddenByPolicy() {
			return true
		}
	}
	return false
}

// FillsColor reports whether the layer draws a solid color fill.
func (l *Layer) FillsColor() bool { return l.Color.HasColor() }

// IsVisible reports whether the layer contributes pixels to the frame:
// not hidden directly or via an ancestor, alpha above zero, a valid
// transform, something to draw (buffer or color fill), and a non-empty
// visible region from the composition engine.
func (l *Layer) IsVisible() bool {
	return len(l.VisibilityReasons()) == 0
}

// VisibilityReasons returns the human-readable reasons the layer is not
// visible. An empty slice means the layer is visible.
func (l *Layer) VisibilityReasons() []string {
	var reasons []string
	if l.IsHiddenByPolicy() {
		reasons = append(reasons, "flag is hidden")
	}
	if l.IsHiddenByParent() {
		reasons = append(reasons, "hidden by parent")
	}
	if l.Color.A == 0 {
		reasons = append(reasons, "alpha is 0")
	}
	if !l.Transform.IsValid() {
		reasons = append(reasons, "transform is invalid")
	}
	if l.ActiveBuffer.Empty() && !l.FillsColor() {
		reasons = append(reasons, "buffer is empty and no color fill")
	}
	if l.VisibleRegion.Empty() {
		reasons = append(reasons, "visible region is empty")
	}
	return reasons
}

// AddChild attaches child to l and sets the child's back-reference.
func (l *Layer) AddChild(child *Layer) {
	l.Children = append(l.Children, child)
	child.Parent = l
}

// Descendants returns the layer's subtree (excluding l) in depth-first,
// input order. Complexity: O(subtree).
func (l *Layer) Descendants() []*Layer {
	var out []*Layer
	var walk func(*Layer)
	walk = func(n *Layer) {
		for _, c := range n.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(l)
	return out
}

// String renders a short identity for error messages and listings.
func (l *Layer) String() string {
	name := l.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s (id=%d)", name, l.ID)
}

// Describe renders the layer identity plus its visibility verdict.
func (l *Layer) Describe() string {
	reasons := l.VisibilityReasons()
	if len(reasons) == 0 {
		return l.String() + ": visible"
	}
	return l.String() + ": invisible (" + strings.Join(reasons, ", ") + ")"
}
