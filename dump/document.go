package dump

import (
	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
)

// Rect mirrors layers.Rect on the wire.
type Rect struct {
	Left   int32 `json:"left" yaml:"left"`
	Top    int32 `json:"top" yaml:"top"`
	Right  int32 `json:"right" yaml:"right"`
	Bottom int32 `json:"bottom" yaml:"bottom"`
}

// RectF mirrors layers.RectF on the wire.
type RectF struct {
	Left   float32 `json:"left" yaml:"left"`
	Top    float32 `json:"top" yaml:"top"`
	Right  float32 `json:"right" yaml:"right"`
	Bottom float32 `json:"bottom" yaml:"bottom"`
}

// Color mirrors layers.Color on the wire.
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// Transform mirrors layers.Transform on the wire.
type Transform struct {
	Dsdx float32 `json:"dsdx" yaml:"dsdx"`
	Dtdx float32 `json:"dtdx" yaml:"dtdx"`
	Dsdy float32 `json:"dsdy" yaml:"dsdy"`
	Dtdy float32 `json:"dtdy" yaml:"dtdy"`
	Tx   float32 `json:"tx" yaml:"tx"`
	Ty   float32 `json:"ty" yaml:"ty"`
}

// Buffer mirrors layers.Buffer on the wire.
type Buffer struct {
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

// Layer is the flat wire form of one layer. Reference fields are pointers
// so that "absent" and "id 0" stay distinguishable; nil means unset.
type Layer struct {
	ID               int64      `json:"id" yaml:"id"`
	Name             string     `json:"name,omitempty" yaml:"name,omitempty"`
	Parent           *int64     `json:"parent,omitempty" yaml:"parent,omitempty"`
	ZOrderRelativeOf *int64     `json:"zOrderRelativeOf,omitempty" yaml:"zOrderRelativeOf,omitempty"`
	StackID          uint32     `json:"stackId,omitempty" yaml:"stackId,omitempty"`
	Z                int32      `json:"z,omitempty" yaml:"z,omitempty"`
	Flags            uint32     `json:"flags,omitempty" yaml:"flags,omitempty"`
	Bounds           *RectF     `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Color            *Color     `json:"color,omitempty" yaml:"color,omitempty"`
	Transform        *Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
	VisibleRegion    []Rect     `json:"visibleRegion,omitempty" yaml:"visibleRegion,omitempty"`
	Buffer           *Buffer    `json:"buffer,omitempty" yaml:"buffer,omitempty"`
	CornerRadius     float32    `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
	ShadowRadius     float32    `json:"shadowRadius,omitempty" yaml:"shadowRadius,omitempty"`
}

// Display is the wire form of one display.
type Display struct {
	ID         uint64 `json:"id" yaml:"id"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	LayerStack uint32 `json:"layerStack" yaml:"layerStack"`
	Size       *Rect  `json:"size,omitempty" yaml:"size,omitempty"`
	IsVirtual  bool   `json:"isVirtual,omitempty" yaml:"isVirtual,omitempty"`
	IsOff      bool   `json:"isOff,omitempty" yaml:"isOff,omitempty"`
}

// Document is one per-frame dump: flat layers, displays and capture
// metadata. This is layertrace's own schema, independent of any
// compositor's native trace format.
type Document struct {
	Source              string    `json:"source,omitempty" yaml:"source,omitempty"`
	ElapsedTimestamp    int64     `json:"elapsedTimestamp" yaml:"elapsedTimestamp"`
	RealToElapsedOffset int64     `json:"realToElapsedOffset,omitempty" yaml:"realToElapsedOffset,omitempty"`
	VsyncID             int64     `json:"vsyncId,omitempty" yaml:"vsyncId,omitempty"`
	Displays            []Display `json:"displays,omitempty" yaml:"displays,omitempty"`
	Layers              []Layer   `json:"layers" yaml:"layers"`
}

// Snapshot reconstructs the layer hierarchy described by the document.
// Extra build options are applied after the document-derived ones, so
// callers can add policies and filters (later options override earlier).
func (d *Document) Snapshot(opts ...snapshot.BuildOption) (*snapshot.Snapshot, error) {
	base := []snapshot.BuildOption{
		snapshot.WithElapsedTimestamp(d.ElapsedTimestamp),
		snapshot.WithRealToElapsedOffset(d.RealToElapsedOffset),
		snapshot.WithVsyncID(d.VsyncID),
		snapshot.WithSource(d.Source),
	}
	b := snapshot.NewBuilder(append(base, opts...)...)
	for i := range d.Layers {
		b.AddLayers(d.Layers[i].toModel())
	}
	for i := range d.Displays {
		b.AddDisplays(d.Displays[i].toModel())
	}
	return b.Build()
}

func (wl *Layer) toModel() *layers.Layer {
	l := &layers.Layer{
		ID:                 wl.ID,
		Name:               wl.Name,
		ParentID:           layers.NoParent,
		ZOrderRelativeOfID: layers.NoParent,
		StackID:            wl.StackID,
		Z:                  wl.Z,
		Flags:              wl.Flags,
		Color:              layers.Color{R: -1, G: -1, B: -1, A: 1},
		Transform:          layers.Transform{Dsdx: 1, Dsdy: 1},
		CornerRadius:       wl.CornerRadius,
		ShadowRadius:       wl.ShadowRadius,
	}
	if wl.Parent != nil {
		l.ParentID = *wl.Parent
	}
	if wl.ZOrderRelativeOf != nil {
		l.ZOrderRelativeOfID = *wl.ZOrderRelativeOf
	}
	if wl.Bounds != nil {
		l.Bounds = layers.RectF(*wl.Bounds)
	}
	if wl.Color != nil {
		l.Color = layers.Color(*wl.Color)
	}
	if wl.Transform != nil {
		l.Transform = layers.Transform(*wl.Transform)
	}
	if wl.Buffer != nil {
		l.ActiveBuffer = layers.Buffer(*wl.Buffer)
	}
	for _, r := range wl.VisibleRegion {
		l.VisibleRegion.Rects = append(l.VisibleRegion.Rects, layers.Rect(r))
	}
	return l
}

func (wd *Display) toModel() *layers.Display {
	d := &layers.Display{
		ID:           wd.ID,
		Name:         wd.Name,
		LayerStackID: wd.LayerStack,
		IsVirtual:    wd.IsVirtual,
		IsOff:        wd.IsOff,
	}
	if wd.Size != nil {
		d.Size = layers.Rect(*wd.Size)
	}
	return d
}

// FromSnapshot flattens a built snapshot back into document form. The
// forest is exported depth-first with relations as id references, so the
// encoders never see a cycle.
func FromSnapshot(s *snapshot.Snapshot) Document {
	doc := Document{
		Source:           s.Where,
		ElapsedTimestamp: s.ElapsedTimestamp,
		VsyncID:          s.VsyncID,
	}
	if s.HasRealTimestamp() {
		doc.RealToElapsedOffset = s.RealTimestamp - s.ElapsedTimestamp
	}
	for _, d := range s.Displays {
		wd := Display{
			ID:         d.ID,
			Name:       d.Name,
			LayerStack: d.LayerStackID,
			IsVirtual:  d.IsVirtual,
			IsOff:      d.IsOff,
		}
		if !d.Size.Empty() {
			size := Rect(d.Size)
			wd.Size = &size
		}
		doc.Displays = append(doc.Displays, wd)
	}
	for _, l := range s.Flatten() {
		doc.Layers = append(doc.Layers, fromModel(l))
	}
	return doc
}

func fromModel(l *layers.Layer) Layer {
	wl := Layer{
		ID:           l.ID,
		Name:         l.Name,
		StackID:      l.StackID,
		Z:            l.Z,
		Flags:        l.Flags,
		CornerRadius: l.CornerRadius,
		ShadowRadius: l.ShadowRadius,
	}
	if l.ParentID != layers.NoParent {
		id := l.ParentID
		wl.Parent = &id
	}
	if l.ZOrderRelativeOfID != layers.NoParent {
		id := l.ZOrderRelativeOfID
		wl.ZOrderRelativeOf = &id
	}
	if !l.Bounds.Empty() {
		bounds := RectF(l.Bounds)
		wl.Bounds = &bounds
	}
	if l.Color.HasColor() || l.Color.A != 1 {
		color := Color(l.Color)
		wl.Color = &color
	}
	if !l.Transform.IsIdentity() {
		tf := Transform(l.Transform)
		wl.Transform = &tf
	}
	if !l.ActiveBuffer.Empty() {
		buf := Buffer(l.ActiveBuffer)
		wl.Buffer = &buf
	}
	for _, r := range l.VisibleRegion.Rects {
		wl.VisibleRegion = append(wl.VisibleRegion, Rect(r))
	}
	return wl
}
