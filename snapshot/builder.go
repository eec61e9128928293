package snapshot

import (
	"fmt"

	"github.com/surfkit/layertrace/layers"
)

// OrphanPolicy decides, per orphan layer, whether the missing parent is
// tolerable (true: drop the orphan silently) or fatal (false).
type OrphanPolicy func(orphan *layers.Layer) bool

// DuplicatePolicy decides what happens when two input layers share an id.
// Returning nil keeps the first layer and drops the incoming one; returning
// an error aborts the build with that error.
type DuplicatePolicy func(existing, incoming *layers.Layer) error

// Builder assembles one Snapshot from a flat dump of layers and displays.
//
// A Builder is single-use: Build consumes it and a second call returns
// ErrBuilderReused. Builders are not safe for concurrent use.
type Builder struct {
	elapsed    int64
	realOffset int64
	vsyncID    int64
	where      string

	ignoreVirtual        bool
	ignoreStackNoDisplay bool
	onOrphan             OrphanPolicy
	onDuplicate          DuplicatePolicy

	layers   []*layers.Layer
	displays []*layers.Display
	built    bool
}

// BuildOption customizes a Builder before construction.
type BuildOption func(*Builder)

// WithElapsedTimestamp sets the monotonic capture time in nanoseconds.
func WithElapsedTimestamp(ns int64) BuildOption {
	return func(b *Builder) { b.elapsed = ns }
}

// WithRealToElapsedOffset sets the offset that converts the elapsed
// timestamp to wall-clock time. Zero means the trace carries no real time.
func WithRealToElapsedOffset(ns int64) BuildOption {
	return func(b *Builder) { b.realOffset = ns }
}

// WithVsyncID sets the compositor frame counter carried into the Snapshot.
func WithVsyncID(id int64) BuildOption {
	return func(b *Builder) { b.vsyncID = id }
}

// WithSource sets a diagnostic label naming where the dump came from.
func WithSource(where string) BuildOption {
	return func(b *Builder) { b.where = where }
}

// IgnoreVirtualDisplays drops virtual displays and the layer roots composed
// into their stacks.
func IgnoreVirtualDisplays() BuildOption {
	return func(b *Builder) { b.ignoreVirtual = true }
}

// IgnoreLayersStackMatchNoDisplay drops layer roots whose stack id matches
// no display in the dump.
func IgnoreLayersStackMatchNoDisplay() BuildOption {
	return func(b *Builder) { b.ignoreStackNoDisplay = true }
}

// WithOrphanPolicy installs the per-orphan decision callback.
// Without it every unresolved orphan is fatal. Panics on nil.
func WithOrphanPolicy(fn OrphanPolicy) BuildOption {
	if fn == nil {
		panic("snapshot: WithOrphanPolicy(nil)")
	}
	return func(b *Builder) { b.onOrphan = fn }
}

// WithDuplicatePolicy installs the id-collision callback.
// Without it the first duplicate id fails the build. Panics on nil.
func WithDuplicatePolicy(fn DuplicatePolicy) BuildOption {
	if fn == nil {
		panic("snapshot: WithDuplicatePolicy(nil)")
	}
	return func(b *Builder) { b.onDuplicate = fn }
}

// NewBuilder returns an empty Builder with the given options applied in
// order (later options override earlier ones).
func NewBuilder(opts ...BuildOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddLayers appends flat layers in dump order. Input order matters: it
// drives deduplication, root selection and child ordering.
func (b *Builder) AddLayers(ls ...*layers.Layer) *Builder {
	b.layers = append(b.layers, ls...)
	return b
}

// AddDisplays appends displays in dump order.
func (b *Builder) AddDisplays(ds ...*layers.Display) *Builder {
	b.displays = append(b.displays, ds...)
	return b
}

// Build reconstructs the layer hierarchy and emits the immutable Snapshot.
//
// The pipeline is deterministic and runs in fixed order: deduplicate,
// link parents, link z-order relatives, promote roots, filter by display
// (no-display stacks, virtual displays, off displays), resolve remaining
// orphans, emit. See the package documentation for the full contract.
//
// Complexity: O(n + d) time and space for n layers and d displays.
func (b *Builder) Build() (*Snapshot, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	b.built = true

	// Deduplicate into an id-keyed map, preserving input order.
	byID := make(map[int64]*layers.Layer, len(b.layers))
	ordered := make([]*layers.Layer, 0, len(b.layers))
	for _, l := range b.layers {
		existing, seen := byID[l.ID]
		if !seen {
			byID[l.ID] = l
			ordered = append(ordered, l)
			continue
		}
		if b.onDuplicate == nil {
			return nil, &DuplicateError{Existing: existing, Incoming: l}
		}
		if err := b.onDuplicate(existing, l); err != nil {
			return nil, fmt.Errorf("snapshot: duplicate policy rejected id %d: %w", l.ID, err)
		}
		// Tolerated collision: the first layer wins, the incoming one is dropped.
	}

	// Link parents; unresolved layers form the orphan working set.
	orphans := make([]*layers.Layer, 0)
	for _, l := range ordered {
		parent, ok := byID[l.ParentID]
		if ok && parent != l {
			parent.AddChild(l)
			continue
		}
		orphans = append(orphans, l)
	}

	// Link z-order relatives independently of ownership. A dangling target
	// keeps its raw id in ZOrderRelativeOfID and never fails the build.
	for _, l := range ordered {
		if l.ZOrderRelativeOfID == layers.NoParent {
			continue
		}
		if target, ok := byID[l.ZOrderRelativeOfID]; ok && target != l {
			l.ZOrderRelativeOf = target
		}
	}

	// Promote roots: the first unresolved layer in input order is the
	// canonical root, and every other unresolved layer sharing its parent id
	// is a sibling root. The rest stay orphans. The first-encountered
	// heuristic is deliberate: capture order puts the true root first.
	var roots []*layers.Layer
	if len(orphans) > 0 {
		rootParentID := orphans[0].ParentID
		remaining := orphans[:0]
		for _, l := range orphans {
			if l.ParentID == rootParentID {
				roots = append(roots, l)
			} else {
				remaining = append(remaining, l)
			}
		}
		orphans = remaining
	}

	displays := append([]*layers.Display(nil), b.displays...)

	if b.ignoreStackNoDisplay {
		known := stackSet(displays, func(*layers.Display) bool { return true })
		roots = keepRoots(roots, known, true)
	}

	if b.ignoreVirtual {
		virtual := stackSet(displays, func(d *layers.Display) bool { return d.IsVirtual })
		roots = keepRoots(roots, virtual, false)
		kept := displays[:0]
		for _, d := range displays {
			if !d.IsVirtual {
				kept = append(kept, d)
			}
		}
		displays = kept
	}

	// Off-display filtering is skipped when no display metadata survived:
	// legacy traces lack it entirely and their roots must be retained.
	if len(displays) > 0 {
		off := stackSet(displays, func(d *layers.Display) bool { return d.IsOff })
		roots = keepRoots(roots, off, false)
	}

	// Whatever is still unresolved answers to the orphan policy.
	for _, o := range orphans {
		if b.onOrphan == nil || !b.onOrphan(o) {
			return nil, &OrphanError{Layer: o}
		}
	}

	var real int64
	if b.realOffset != 0 {
		real = b.realOffset + b.elapsed
	}

	return &Snapshot{
		ElapsedTimestamp: b.elapsed,
		RealTimestamp:    real,
		VsyncID:          b.vsyncID,
		Where:            b.where,
		Displays:         displays,
		RootLayers:       roots,
	}, nil
}

// stackSet collects the layer-stack ids of displays matching pred.
func stackSet(ds []*layers.Display, pred func(*layers.Display) bool) map[uint32]struct{} {
	out := make(map[uint32]struct{}, len(ds))
	for _, d := range ds {
		if pred(d) {
			out[d.LayerStackID] = struct{}{}
		}
	}
	return out
}

// keepRoots filters roots by stack membership: keep members when member is
// true, keep non-members when member is false.
func keepRoots(roots []*layers.Layer, stacks map[uint32]struct{}, member bool) []*layers.Layer {
	kept := roots[:0]
	for _, r := range roots {
		_, in := stacks[r.StackID]
		if in == member {
			kept = append(kept, r)
		}
	}
	return kept
}
