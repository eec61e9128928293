// Package layers: geometric primitives shared by the compositor data model.
//
// Compositor dumps carry two flavors of rectangles: integer device-pixel
// rects (visible regions, display frames) and float layer-space rects
// (bounds before transform). Both are modeled here, together with the
// premultiplied color and the 2D affine transform attached to each layer.

package layers

import "fmt"

// Rect is an integer rectangle in device pixels, [Left,Right)×[Top,Bottom).
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns Right-Left; negative widths mean an invalid rect.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns Bottom-Top; negative heights mean an invalid rect.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether other lies fully inside r.
func (r Rect) Contains(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Intersect returns the overlap of r and other (empty rect if disjoint).
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   max32(r.Left, other.Left),
		Top:    max32(r.Top, other.Top),
		Right:  min32(r.Right, other.Right),
		Bottom: min32(r.Bottom, other.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// String renders the rect as "(l, t) - (r, b)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d) - (%d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

// RectF is a float rectangle in layer space.
type RectF struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Empty reports whether the rect covers no area.
func (r RectF) Empty() bool { return r.Right-r.Left <= 0 || r.Bottom-r.Top <= 0 }

// Contains reports whether other lies fully inside r.
func (r RectF) Contains(other RectF) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// String renders the rect as "(l, t) - (r, b)".
func (r RectF) String() string {
	return fmt.Sprintf("(%.3f, %.3f) - (%.3f, %.3f)", r.Left, r.Top, r.Right, r.Bottom)
}

// Region is an ordered set of non-overlapping integer rects, as produced by
// the composition engine for per-layer visible coverage.
type Region struct {
	Rects []Rect
}

// Empty reports whether the region covers no pixels.
func (re Region) Empty() bool {
	for _, r := range re.Rects {
		if !r.Empty() {
			return false
		}
	}
	return true
}

// Bounds returns the tightest rect enclosing every rect in the region.
func (re Region) Bounds() Rect {
	var out Rect
	first := true
	for _, r := range re.Rects {
		if r.Empty() {
			continue
		}
		if first {
			out, first = r, false
			continue
		}
		out.Left = min32(out.Left, r.Left)
		out.Top = min32(out.Top, r.Top)
		out.Right = max32(out.Right, r.Right)
		out.Bottom = max32(out.Bottom, r.Bottom)
	}
	return out
}

// Color is a non-premultiplied RGBA color with components in [0,1].
// Alpha doubles as the layer's effective opacity.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// HasColor reports whether the color channels describe a fill.
// Dumps encode "no color" as -1 per channel.
func (c Color) HasColor() bool { return c.R >= 0 && c.G >= 0 && c.B >= 0 }

// IsOpaque reports whether alpha is fully on.
func (c Color) IsOpaque() bool { return c.A >= 1 }

// Buffer describes the pixel buffer currently latched by a layer.
// A zero Buffer means the layer has nothing queued.
type Buffer struct {
	Width  uint32
	Height uint32
}

// Empty reports whether no buffer is latched.
func (b Buffer) Empty() bool { return b.Width == 0 || b.Height == 0 }

// Transform is the 2D affine transform applied to a layer or display,
// stored row-major as |Dsdx Dtdx Tx| / |Dtdy Dsdy Ty|.
type Transform struct {
	Dsdx float32
	Dtdx float32
	Dsdy float32
	Dtdy float32
	Tx   float32
	Ty   float32
}

// IsIdentity reports whether the transform leaves coordinates untouched.
func (t Transform) IsIdentity() bool {
	return t.Dsdx == 1 && t.Dtdx == 0 && t.Dsdy == 1 && t.Dtdy == 0 && t.Tx == 0 && t.Ty == 0
}

// IsValid reports whether the transform maps any area at all
// (a zero determinant collapses the layer to nothing).
func (t Transform) IsValid() bool {
	return t.Dsdx*t.Dsdy-t.Dtdx*t.Dtdy != 0
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
