package topomap

import (
	"math"
	"testing"

	"github.com/mrjoshuak/otio-topology/compose"
	"github.com/mrjoshuak/otio-topology/discreteinfo"
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/rational"
)

func approxEqual(a, b ordinate.Ordinate) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func foldPath(path []mapping.Topology, x ordinate.Ordinate) (ordinate.Ordinate, error) {
	cur := mapping.Topology{Mappings: []mapping.Mapping{mapping.NewAffine(ordinate.NewInterval(x, x+1), 1, 0)}}
	for _, seg := range path {
		joined, err := mapping.Join(cur, seg)
		if err != nil {
			return 0, err
		}
		cur = joined
	}
	return cur.ProjectOrdinate(x)
}

func mustClip(t *testing.T, name string, dur, mediaStart float64, rate int32) *compose.Clip {
	t.Helper()
	info := discreteinfo.New(rational.FromInt(rate), 0)
	c, err := compose.NewClip(name, ordinate.NewInterval(ordinate.Ordinate(mediaStart), ordinate.Ordinate(mediaStart+dur)), info, "ref://"+name)
	if err != nil {
		t.Fatalf("NewClip(%s): %v", name, err)
	}
	return c
}

// buildVerticalTree is Timeline -> Stack -> Track -> [c1, gap, c2].
func buildVerticalTree(t *testing.T) (*compose.Timeline, *compose.Clip, *compose.Clip) {
	t.Helper()
	c1 := mustClip(t, "c1", 5, 0, 24)
	gap := compose.NewGap("gap", 2)
	c2 := mustClip(t, "c2", 10, 3, 30)

	track, err := compose.NewTrack("track", []compose.Node{c1, gap, c2})
	if err != nil {
		t.Fatalf("NewTrack: %v", err)
	}
	stack := compose.NewStack("stack", []compose.Node{track})
	info := discreteinfo.New(rational.FromInt(24), 0)
	tl := compose.NewTimeline("tl", stack, info)
	return tl, c1, c2
}

func TestPathIdentitySameVertex(t *testing.T) {
	tl, _, _ := buildVerticalTree(t)
	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path, err := m.Path(tl, compose.SpacePresentation, tl, compose.SpacePresentation)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if path != nil {
		t.Errorf("expected nil (identity) path for same vertex, got %v", path)
	}
}

func TestPathTimelineToClipMedia(t *testing.T) {
	tl, c1, _ := buildVerticalTree(t)
	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path, err := m.Path(tl, compose.SpacePresentation, c1, compose.SpaceMedia)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if len(path) == 0 {
		t.Fatal("expected a non-empty path")
	}
	got, err := foldPath(path, 2)
	if err != nil {
		t.Fatalf("foldPath: %v", err)
	}
	if !approxEqual(got, 2) {
		t.Errorf("timeline presentation 2 -> c1 media = %v, want 2", got)
	}
}

func TestPathClipMediaToSiblingClipMediaAcrossStack(t *testing.T) {
	c1 := mustClip(t, "c1", 5, 0, 24)
	c2 := mustClip(t, "c2", 5, 3, 30)

	trackA, err := compose.NewTrack("trackA", []compose.Node{c1})
	if err != nil {
		t.Fatalf("NewTrack(trackA): %v", err)
	}
	trackB, err := compose.NewTrack("trackB", []compose.Node{c2})
	if err != nil {
		t.Fatalf("NewTrack(trackB): %v", err)
	}
	stack := compose.NewStack("stack", []compose.Node{trackA, trackB})
	info := discreteinfo.New(rational.FromInt(24), 0)
	tl := compose.NewTimeline("tl", stack, info)

	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path, err := m.Path(c1, compose.SpaceMedia, c2, compose.SpaceMedia)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, err := foldPath(path, 2)
	if err != nil {
		t.Fatalf("foldPath: %v", err)
	}
	if !approxEqual(got, 5) {
		t.Errorf("c1 media 2 -> c2 media = %v, want 5", got)
	}
}

// TestBFSPathReachesAncestorAndSibling exercises bfsPath directly (rather
// than through Path's climbPath-first dispatch) to confirm it can actually
// climb against the tree's edge direction, inverting shadow edges along
// the way, instead of only ever reaching descendants.
func TestBFSPathReachesAncestorAndSibling(t *testing.T) {
	tl, c1, _ := buildVerticalTree(t)
	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	srcKey := keyFor(c1, compose.SpaceMedia)
	dstKey := keyFor(tl, compose.SpacePresentation)
	path, err := m.bfsPath(srcKey, dstKey)
	if err != nil {
		t.Fatalf("bfsPath (media -> ancestor presentation): %v", err)
	}
	got, err := foldPath(path, 2)
	if err != nil {
		t.Fatalf("foldPath: %v", err)
	}
	if !approxEqual(got, 2) {
		t.Errorf("bfsPath c1 media 2 -> timeline presentation = %v, want 2", got)
	}

	c1b := mustClip(t, "c1b", 5, 0, 24)
	c2b := mustClip(t, "c2b", 5, 3, 30)
	trackA, err := compose.NewTrack("trackA", []compose.Node{c1b})
	if err != nil {
		t.Fatalf("NewTrack(trackA): %v", err)
	}
	trackB, err := compose.NewTrack("trackB", []compose.Node{c2b})
	if err != nil {
		t.Fatalf("NewTrack(trackB): %v", err)
	}
	stack := compose.NewStack("stack", []compose.Node{trackA, trackB})
	info := discreteinfo.New(rational.FromInt(24), 0)
	tl2 := compose.NewTimeline("tl2", stack, info)
	m2, err := Build(tl2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	siblingPath, err := m2.bfsPath(keyFor(c1b, compose.SpaceMedia), keyFor(c2b, compose.SpaceMedia))
	if err != nil {
		t.Fatalf("bfsPath (sibling -> sibling): %v", err)
	}
	got, err = foldPath(siblingPath, 2)
	if err != nil {
		t.Fatalf("foldPath: %v", err)
	}
	if !approxEqual(got, 5) {
		t.Errorf("bfsPath c1b media 2 -> c2b media = %v, want 5", got)
	}
}

func TestPathUnknownVertexFails(t *testing.T) {
	tl, _, _ := buildVerticalTree(t)
	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	stray := compose.NewGap("stray", 1)
	if _, err := m.Path(tl, compose.SpacePresentation, stray, compose.SpacePresentation); err == nil {
		t.Fatal("expected an error projecting to a node absent from the map")
	}
}
