package snapshot

import (
	"fmt"
	"strings"

	"github.com/surfkit/layertrace/layers"
)

// Snapshot is one immutable per-frame view of the compositor state: the
// filtered display list plus the reconstructed layer forest.
//
// A Snapshot is safe for concurrent reads once built; nothing mutates it
// after Builder.Build returns.
type Snapshot struct {
	// ElapsedTimestamp is the monotonic capture time in nanoseconds.
	ElapsedTimestamp int64
	// RealTimestamp is the wall-clock capture time in nanoseconds since the
	// Unix epoch, or 0 when the trace carried no real-time offset.
	RealTimestamp int64
	// VsyncID is the compositor frame counter at capture time.
	VsyncID int64
	// Where is a diagnostic label naming the dump source.
	Where string
	// Displays holds the filtered displays in input order.
	Displays []*layers.Display
	// RootLayers holds the filtered forest roots in input order.
	RootLayers []*layers.Layer
}

// HasRealTimestamp reports whether the capture carried a real-time offset.
func (s *Snapshot) HasRealTimestamp() bool { return s.RealTimestamp != 0 }

// Flatten returns every layer in the forest in depth-first, input order.
// Complexity: O(n).
func (s *Snapshot) Flatten() []*layers.Layer {
	var out []*layers.Layer
	for _, root := range s.RootLayers {
		out = append(out, root)
		out = append(out, root.Descendants()...)
	}
	return out
}

// LayerByID returns the layer with the given id, or nil if it is not part
// of the forest.
func (s *Snapshot) LayerByID(id int64) *layers.Layer {
	for _, l := range s.Flatten() {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// LayersByName returns every layer whose name matches exactly, in
// depth-first order. Compositor names are not unique.
func (s *Snapshot) LayersByName(name string) []*layers.Layer {
	var out []*layers.Layer
	for _, l := range s.Flatten() {
		if l.Name == name {
			out = append(out, l)
		}
	}
	return out
}

// VisibleLayers returns the layers that contribute pixels to this frame.
func (s *Snapshot) VisibleLayers() []*layers.Layer {
	var out []*layers.Layer
	for _, l := range s.Flatten() {
		if l.IsVisible() {
			out = append(out, l)
		}
	}
	return out
}

// String renders a one-line identity for error messages.
func (s *Snapshot) String() string {
	return fmt.Sprintf("snapshot(elapsed=%dns, vsync=%d, roots=%d)",
		s.ElapsedTimestamp, s.VsyncID, len(s.RootLayers))
}

// TreeString renders the layer forest as an indented tree, one layer per
// line with its visibility verdict. Intended for dump inspection tools.
func (s *Snapshot) TreeString() string {
	var sb strings.Builder
	var walk func(l *layers.Layer, depth int)
	walk = func(l *layers.Layer, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(l.Describe())
		sb.WriteByte('\n')
		for _, c := range l.Children {
			walk(c, depth+1)
		}
	}
	for _, root := range s.RootLayers {
		walk(root, 0)
	}
	return sb.String()
}
