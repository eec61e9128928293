package diff

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
)

// layerCompare excludes the relational back-references from attribute
// comparison: they are cyclic and fully derived from the id fields.
var layerCompare = cmpopts.IgnoreFields(layers.Layer{},
	"Parent", "Children", "ZOrderRelativeOf")

// LayerChange pairs the two versions of a layer present in both snapshots
// whose attributes differ. Detail carries the go-cmp rendering.
type LayerChange struct {
	Before *layers.Layer
	After  *layers.Layer
	Detail string
}

// DisplayChange is the display counterpart of LayerChange.
type DisplayChange struct {
	Before *layers.Display
	After  *layers.Display
	Detail string
}

// Result is the structural difference between two snapshots. Layers and
// displays are matched by id; order follows the after-snapshot for
// additions and changes and the before-snapshot for removals.
type Result struct {
	AddedLayers   []*layers.Layer
	RemovedLayers []*layers.Layer
	ChangedLayers []LayerChange

	AddedDisplays   []*layers.Display
	RemovedDisplays []*layers.Display
	ChangedDisplays []DisplayChange
}

// Empty reports whether the two snapshots are structurally identical.
func (r Result) Empty() bool {
	return len(r.AddedLayers) == 0 && len(r.RemovedLayers) == 0 && len(r.ChangedLayers) == 0 &&
		len(r.AddedDisplays) == 0 && len(r.RemovedDisplays) == 0 && len(r.ChangedDisplays) == 0
}

// String renders the diff as a human-readable report, one item per line.
func (r Result) String() string {
	if r.Empty() {
		return "snapshots are identical\n"
	}
	var sb strings.Builder
	for _, l := range r.AddedLayers {
		fmt.Fprintf(&sb, "+ layer %s\n", l)
	}
	for _, l := range r.RemovedLayers {
		fmt.Fprintf(&sb, "- layer %s\n", l)
	}
	for _, c := range r.ChangedLayers {
		fmt.Fprintf(&sb, "~ layer %s\n%s", c.After, indent(c.Detail))
	}
	for _, d := range r.AddedDisplays {
		fmt.Fprintf(&sb, "+ display %s\n", d)
	}
	for _, d := range r.RemovedDisplays {
		fmt.Fprintf(&sb, "- display %s\n", d)
	}
	for _, c := range r.ChangedDisplays {
		fmt.Fprintf(&sb, "~ display %s\n%s", c.After, indent(c.Detail))
	}
	return sb.String()
}

// Snapshots computes the structural difference between two snapshots.
// Complexity: O(n + d) id matching plus attribute comparison per pair.
func Snapshots(before, after *snapshot.Snapshot) Result {
	var r Result

	beforeLayers := make(map[int64]*layers.Layer)
	for _, l := range before.Flatten() {
		beforeLayers[l.ID] = l
	}
	seen := make(map[int64]struct{})
	for _, l := range after.Flatten() {
		seen[l.ID] = struct{}{}
		prev, ok := beforeLayers[l.ID]
		if !ok {
			r.AddedLayers = append(r.AddedLayers, l)
			continue
		}
		if detail := cmp.Diff(prev, l, layerCompare); detail != "" {
			r.ChangedLayers = append(r.ChangedLayers, LayerChange{Before: prev, After: l, Detail: detail})
		}
	}
	for _, l := range before.Flatten() {
		if _, ok := seen[l.ID]; !ok {
			r.RemovedLayers = append(r.RemovedLayers, l)
		}
	}

	beforeDisplays := make(map[uint64]*layers.Display)
	for _, d := range before.Displays {
		beforeDisplays[d.ID] = d
	}
	seenDisplays := make(map[uint64]struct{})
	for _, d := range after.Displays {
		seenDisplays[d.ID] = struct{}{}
		prev, ok := beforeDisplays[d.ID]
		if !ok {
			r.AddedDisplays = append(r.AddedDisplays, d)
			continue
		}
		if detail := cmp.Diff(prev, d); detail != "" {
			r.ChangedDisplays = append(r.ChangedDisplays, DisplayChange{Before: prev, After: d, Detail: detail})
		}
	}
	for _, d := range before.Displays {
		if _, ok := seenDisplays[d.ID]; !ok {
			r.RemovedDisplays = append(r.RemovedDisplays, d)
		}
	}

	return r
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
