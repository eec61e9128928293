package assertion_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/surfkit/layertrace/assertion"
	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
	"github.com/surfkit/layertrace/trace"
)

// visibleLayer returns a layer that passes every visibility check.
func visibleLayer(id int64, name string) *layers.Layer {
	return &layers.Layer{
		ID:                 id,
		Name:               name,
		ParentID:           layers.NoParent,
		ZOrderRelativeOfID: layers.NoParent,
		Color:              layers.Color{R: 1, G: 1, B: 1, A: 1},
		Transform:          layers.Transform{Dsdx: 1, Dsdy: 1},
		ActiveBuffer:       layers.Buffer{Width: 64, Height: 64},
		VisibleRegion:      layers.Region{Rects: []layers.Rect{{Right: 64, Bottom: 64}}},
	}
}

// hiddenLayer returns a layer present in the forest but flagged hidden.
func hiddenLayer(id int64, name string) *layers.Layer {
	l := visibleLayer(id, name)
	l.Flags = layers.FlagHidden
	return l
}

func snapAt(t *testing.T, elapsed int64, ls ...*layers.Layer) *snapshot.Snapshot {
	t.Helper()
	s, err := snapshot.NewBuilder(snapshot.WithElapsedTimestamp(elapsed)).
		AddLayers(ls...).Build()
	require.NoError(t, err)
	return s
}

func traceOf(t *testing.T, snaps ...*snapshot.Snapshot) *trace.Trace {
	t.Helper()
	tr, err := trace.New(snaps...)
	require.NoError(t, err)
	return tr
}

type AssertionSuite struct {
	suite.Suite
}

func (s *AssertionSuite) TestLayerExists() {
	snap := snapAt(s.T(), 1, visibleLayer(1, "Launcher"))

	require.NoError(s.T(), assertion.LayerExists("Launcher").Check(snap))

	err := assertion.LayerExists("StatusBar").Check(snap)
	require.ErrorIs(s.T(), err, assertion.ErrAssertionFailed)
	require.Contains(s.T(), err.Error(), `"StatusBar"`)
}

func (s *AssertionSuite) TestLayerIsVisible() {
	snap := snapAt(s.T(), 1, visibleLayer(1, "Launcher"), hiddenLayer(2, "Overlay"))

	require.NoError(s.T(), assertion.LayerIsVisible("Launcher").Check(snap))

	err := assertion.LayerIsVisible("Overlay").Check(snap)
	require.ErrorIs(s.T(), err, assertion.ErrAssertionFailed)
	require.Contains(s.T(), err.Error(), "flag is hidden")
}

func (s *AssertionSuite) TestLayerIsInvisible() {
	snap := snapAt(s.T(), 1, visibleLayer(1, "Launcher"), hiddenLayer(2, "Overlay"))

	require.NoError(s.T(), assertion.LayerIsInvisible("Overlay").Check(snap))
	require.NoError(s.T(), assertion.LayerIsInvisible("NotThere").Check(snap),
		"absent layers are invisible")
	require.ErrorIs(s.T(), assertion.LayerIsInvisible("Launcher").Check(snap),
		assertion.ErrAssertionFailed)
}

func (s *AssertionSuite) TestVisibleRegionCovers() {
	snap := snapAt(s.T(), 1, visibleLayer(1, "Launcher"))

	target := layers.Rect{Left: 10, Top: 10, Right: 50, Bottom: 50}
	require.NoError(s.T(), assertion.VisibleRegionCovers("Launcher", target).Check(snap))

	tooBig := layers.Rect{Right: 128, Bottom: 128}
	require.ErrorIs(s.T(), assertion.VisibleRegionCovers("Launcher", tooBig).Check(snap),
		assertion.ErrAssertionFailed)
}

func (s *AssertionSuite) TestNot() {
	snap := snapAt(s.T(), 1, visibleLayer(1, "Launcher"))

	require.NoError(s.T(), assertion.Not(assertion.LayerExists("StatusBar")).Check(snap))
	require.ErrorIs(s.T(), assertion.Not(assertion.LayerExists("Launcher")).Check(snap),
		assertion.ErrAssertionFailed)
}

func (s *AssertionSuite) TestVerify() {
	tr := traceOf(s.T(),
		snapAt(s.T(), 100, visibleLayer(1, "Launcher")),
		snapAt(s.T(), 200, visibleLayer(1, "Launcher")),
		snapAt(s.T(), 300, hiddenLayer(1, "Launcher")),
	)

	require.NoError(s.T(), assertion.Verify(tr.Slice(100, 200), assertion.LayerIsVisible("Launcher")))

	err := assertion.Verify(tr, assertion.LayerIsVisible("Launcher"))
	require.ErrorIs(s.T(), err, assertion.ErrAssertionFailed)
	require.Contains(s.T(), err.Error(), "at elapsed 300ns")
}

func TestAssertionSuite(t *testing.T) {
	suite.Run(t, new(AssertionSuite))
}

// TestSequenceTransition models a launch cross-fade: launcher alone, both
// surfaces during the animation, then the app alone.
func TestSequenceTransition(t *testing.T) {
	entries := []*snapshot.Snapshot{
		snapAt(t, 100, visibleLayer(1, "Launcher")),
		snapAt(t, 200, visibleLayer(1, "Launcher"), visibleLayer(2, "App")),
		snapAt(t, 300, visibleLayer(1, "Launcher"), visibleLayer(2, "App")),
		snapAt(t, 400, hiddenLayer(1, "Launcher"), visibleLayer(2, "App")),
	}
	tr := traceOf(t, entries...)

	seq := assertion.NewSequence().
		Then(assertion.LayerIsInvisible("App")).
		Then(assertion.LayerIsVisible("Launcher")).
		Then(assertion.LayerIsInvisible("Launcher"))
	require.NoError(t, seq.Evaluate(tr))
}

func TestSequenceBrokenTransition(t *testing.T) {
	tr := traceOf(t,
		snapAt(t, 100, visibleLayer(1, "Launcher")),
		snapAt(t, 200, hiddenLayer(1, "Launcher")),
	)

	// The second step never matches: the app never shows up.
	seq := assertion.NewSequence().
		Then(assertion.LayerIsVisible("Launcher")).
		Then(assertion.LayerIsVisible("App"))
	err := seq.Evaluate(tr)
	require.ErrorIs(t, err, assertion.ErrAssertionFailed)
	require.Contains(t, err.Error(), "at elapsed 200ns")
}

func TestSequenceEndsEarly(t *testing.T) {
	tr := traceOf(t, snapAt(t, 100, visibleLayer(1, "Launcher")))

	seq := assertion.NewSequence().
		Then(assertion.LayerIsVisible("Launcher")).
		Then(assertion.LayerIsInvisible("Launcher"))
	err := seq.Evaluate(tr)
	require.ErrorIs(t, err, assertion.ErrAssertionFailed)
	require.Contains(t, err.Error(), "trace ended before")
}

func TestSequenceNoSteps(t *testing.T) {
	tr := traceOf(t, snapAt(t, 100, visibleLayer(1, "Launcher")))
	require.ErrorIs(t, assertion.NewSequence().Evaluate(tr), assertion.ErrNoAssertions)
}

func TestSequenceEmptyTrace(t *testing.T) {
	tr := traceOf(t)
	seq := assertion.NewSequence().Then(assertion.LayerExists("Launcher"))
	require.ErrorIs(t, seq.Evaluate(tr), trace.ErrEmptyTrace)
}
