package dump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surfkit/layertrace/dump"
	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
)

const jsonDump = `{
  "source": "dumpsys SurfaceFlinger",
  "elapsedTimestamp": 123456789,
  "realToElapsedOffset": 1000000000,
  "vsyncId": 77,
  "displays": [
    {"id": 1, "name": "internal", "layerStack": 0, "size": {"left": 0, "top": 0, "right": 1080, "bottom": 2400}}
  ],
  "layers": [
    {"id": 1, "name": "Display Root#0", "buffer": {"width": 64, "height": 64}, "visibleRegion": [{"left": 0, "top": 0, "right": 1080, "bottom": 2400}]},
    {"id": 2, "name": "Launcher#0", "parent": 1, "buffer": {"width": 64, "height": 64}, "visibleRegion": [{"left": 0, "top": 0, "right": 1080, "bottom": 2400}]},
    {"id": 3, "name": "Dim#0", "parent": 1, "zOrderRelativeOf": 2, "color": {"r": 0, "g": 0, "b": 0, "a": 0.5}}
  ]
}`

const yamlDump = `source: capture script
elapsedTimestamp: 500
layers:
  - id: 1
    name: root
  - id: 2
    name: child
    parent: 1
`

func TestDecodeJSONAndBuild(t *testing.T) {
	doc, err := dump.DecodeJSON(strings.NewReader(jsonDump))
	require.NoError(t, err)
	require.Len(t, doc.Layers, 3)

	snap, err := doc.Snapshot()
	require.NoError(t, err)
	require.Equal(t, int64(123456789), snap.ElapsedTimestamp)
	require.Equal(t, int64(1000000000+123456789), snap.RealTimestamp)
	require.Equal(t, int64(77), snap.VsyncID)
	require.Equal(t, "dumpsys SurfaceFlinger", snap.Where)

	require.Len(t, snap.RootLayers, 1)
	root := snap.RootLayers[0]
	require.Equal(t, "Display Root#0", root.Name)
	require.Len(t, root.Children, 2)

	dim := snap.LayerByID(3)
	require.NotNil(t, dim)
	require.Same(t, snap.LayerByID(2), dim.ZOrderRelativeOf)
	require.InDelta(t, 0.5, dim.Color.A, 1e-6)

	// Unset wire fields fall back to the model defaults.
	launcher := snap.LayerByID(2)
	require.True(t, launcher.Transform.IsIdentity())
	require.False(t, launcher.FillsColor())
	require.True(t, launcher.IsVisible())
}

func TestDecodeYAML(t *testing.T) {
	doc, err := dump.DecodeYAML(strings.NewReader(yamlDump))
	require.NoError(t, err)
	require.Equal(t, "capture script", doc.Source)

	snap, err := doc.Snapshot()
	require.NoError(t, err)
	require.False(t, snap.HasRealTimestamp())
	require.Len(t, snap.RootLayers, 1)
	require.Len(t, snap.RootLayers[0].Children, 1)
}

func TestDecodeSniffsFormat(t *testing.T) {
	fromJSON, err := dump.Decode(strings.NewReader("\n  " + jsonDump))
	require.NoError(t, err)
	require.Equal(t, "dumpsys SurfaceFlinger", fromJSON.Source)

	fromYAML, err := dump.Decode(strings.NewReader(yamlDump))
	require.NoError(t, err)
	require.Equal(t, "capture script", fromYAML.Source)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := dump.DecodeJSON(strings.NewReader(`{"layers": [], "bogus": 1}`))
	require.Error(t, err)

	_, err = dump.DecodeYAML(strings.NewReader("bogus: 1\n"))
	require.Error(t, err)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := dump.Decode(strings.NewReader("   "))
	require.ErrorIs(t, err, dump.ErrUnknownFormat)
}

func TestSnapshotExtraOptions(t *testing.T) {
	doc, err := dump.DecodeJSON(strings.NewReader(jsonDump))
	require.NoError(t, err)

	// Caller options stack on top of the document-derived ones.
	var tolerated int
	_, err = doc.Snapshot(snapshot.WithOrphanPolicy(func(*layers.Layer) bool {
		tolerated++
		return true
	}))
	require.NoError(t, err)
	require.Zero(t, tolerated, "well-formed dump consults no orphan policy")
}

func TestRoundTrip(t *testing.T) {
	doc, err := dump.DecodeJSON(strings.NewReader(jsonDump))
	require.NoError(t, err)
	snap, err := doc.Snapshot()
	require.NoError(t, err)

	out := dump.FromSnapshot(snap)
	require.Equal(t, doc.Source, out.Source)
	require.Equal(t, doc.ElapsedTimestamp, out.ElapsedTimestamp)
	require.Equal(t, doc.RealToElapsedOffset, out.RealToElapsedOffset)
	require.Len(t, out.Layers, 3)
	require.Nil(t, out.Layers[0].Parent)
	require.NotNil(t, out.Layers[1].Parent)
	require.Equal(t, int64(1), *out.Layers[1].Parent)

	var buf bytes.Buffer
	require.NoError(t, dump.EncodeJSON(&buf, out))
	again, err := dump.DecodeJSON(&buf)
	require.NoError(t, err)

	snap2, err := again.Snapshot()
	require.NoError(t, err)
	require.Equal(t, snap.TreeString(), snap2.TreeString())

	buf.Reset()
	require.NoError(t, dump.EncodeYAML(&buf, out))
	again, err = dump.DecodeYAML(&buf)
	require.NoError(t, err)
	require.Equal(t, doc.Source, again.Source)
}
