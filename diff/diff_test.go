package diff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surfkit/layertrace/diff"
	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
)

func buildSnap(t *testing.T, ds []*layers.Display, ls ...*layers.Layer) *snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.NewBuilder().AddLayers(ls...).AddDisplays(ds...).Build()
	require.NoError(t, err)
	return snap
}

func plainLayer(id, parent int64, name string) *layers.Layer {
	return &layers.Layer{
		ID:                 id,
		Name:               name,
		ParentID:           parent,
		ZOrderRelativeOfID: layers.NoParent,
		Transform:          layers.Transform{Dsdx: 1, Dsdy: 1},
	}
}

func TestIdenticalSnapshots(t *testing.T) {
	mk := func() *snapshot.Snapshot {
		return buildSnap(t, nil,
			plainLayer(1, layers.NoParent, "root"),
			plainLayer(2, 1, "child"),
		)
	}
	r := diff.Snapshots(mk(), mk())
	require.True(t, r.Empty())
	require.Equal(t, "snapshots are identical\n", r.String())
}

func TestAddedRemovedLayers(t *testing.T) {
	before := buildSnap(t, nil,
		plainLayer(1, layers.NoParent, "root"),
		plainLayer(2, 1, "gone"),
	)
	after := buildSnap(t, nil,
		plainLayer(1, layers.NoParent, "root"),
		plainLayer(3, 1, "new"),
	)

	r := diff.Snapshots(before, after)
	require.Len(t, r.AddedLayers, 1)
	require.Equal(t, int64(3), r.AddedLayers[0].ID)
	require.Len(t, r.RemovedLayers, 1)
	require.Equal(t, int64(2), r.RemovedLayers[0].ID)
	require.Empty(t, r.ChangedLayers)
}

func TestChangedLayerAttributes(t *testing.T) {
	before := buildSnap(t, nil, plainLayer(1, layers.NoParent, "root"))

	moved := plainLayer(1, layers.NoParent, "root")
	moved.Bounds = layers.RectF{Right: 500, Bottom: 500}
	after := buildSnap(t, nil, moved)

	r := diff.Snapshots(before, after)
	require.Empty(t, r.AddedLayers)
	require.Empty(t, r.RemovedLayers)
	require.Len(t, r.ChangedLayers, 1)
	require.Contains(t, r.ChangedLayers[0].Detail, "Bounds")
	require.Contains(t, r.String(), "~ layer root (id=1)")
}

func TestReparentingIsNotAChange(t *testing.T) {
	// Relational pointers are excluded from comparison; only the ParentID
	// attribute itself counts.
	before := buildSnap(t, nil,
		plainLayer(1, layers.NoParent, "root"),
		plainLayer(2, 1, "a"),
		plainLayer(3, 1, "b"),
	)
	after := buildSnap(t, nil,
		plainLayer(1, layers.NoParent, "root"),
		plainLayer(2, 1, "a"),
		plainLayer(3, 2, "b"),
	)

	r := diff.Snapshots(before, after)
	require.Len(t, r.ChangedLayers, 1, "ParentID change is an attribute change")
	require.Contains(t, r.ChangedLayers[0].Detail, "ParentID")
}

func TestDisplayDiff(t *testing.T) {
	before := buildSnap(t,
		[]*layers.Display{
			{ID: 1, Name: "internal", LayerStackID: 0},
			{ID: 2, Name: "external", LayerStackID: 1},
		},
		plainLayer(1, layers.NoParent, "root"),
	)
	after := buildSnap(t,
		[]*layers.Display{
			{ID: 1, Name: "internal", LayerStackID: 0, Size: layers.Rect{Right: 1080, Bottom: 2400}},
		},
		plainLayer(1, layers.NoParent, "root"),
	)

	r := diff.Snapshots(before, after)
	require.Len(t, r.RemovedDisplays, 1)
	require.Equal(t, uint64(2), r.RemovedDisplays[0].ID)
	require.Len(t, r.ChangedDisplays, 1)
	require.Contains(t, r.ChangedDisplays[0].Detail, "Size")
}
