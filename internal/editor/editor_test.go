package editor

import (
	"math/rand"
	"testing"

	"github.com/gravitas-games/hexline/internal/grid"
	"github.com/gravitas-games/hexline/internal/line"
	"github.com/gravitas-games/hexline/pkg/hex"
)

const testHexSize = 20.0

type fixture struct {
	grid   *grid.Grid
	store  *line.Store
	engine *line.Engine
	editor *Editor
}

func newFixture(t *testing.T, stations ...hex.Axial) *fixture {
	t.Helper()
	g := grid.New(grid.NewRadiusBounds(10), 0, rand.New(rand.NewSource(1)))
	for _, c := range stations {
		if _, err := g.PlaceStation(grid.Normal, grid.FacingCenter, c); err != nil {
			t.Fatalf("place %v: %v", c, err)
		}
	}
	s := line.NewStore()
	e := line.NewEngine(s, g)
	ed := New(g, s, e, Params{HexSize: testHexSize})
	return &fixture{grid: g, store: s, engine: e, editor: ed}
}

func px(c hex.Axial) (float64, float64) {
	return hex.AxialToPixel(c, testHexSize)
}

func (f *fixture) down(c hex.Axial, b Button) {
	x, y := px(c)
	f.editor.PointerDown(x, y, b)
}

func (f *fixture) move(c hex.Axial) {
	x, y := px(c)
	f.editor.PointerMove(x, y)
}

func (f *fixture) up(c hex.Axial, b Button) {
	x, y := px(c)
	f.editor.PointerUp(x, y, b)
}

func TestDrawNewLine(t *testing.T) {
	a, b, c := hex.Axial{}, hex.Axial{Q: 1, R: 0}, hex.Axial{Q: 2, R: 0}
	f := newFixture(t, a, c)

	f.down(a, Primary)
	if !f.editor.Drawing() {
		t.Fatalf("pointer-down on a station must start a session")
	}
	f.move(b)
	f.move(c)
	f.up(c, Primary)

	all := f.store.All()
	if len(all) != 1 || len(all[0].Points) != 3 {
		t.Fatalf("expected one 3-point line, got %v", all)
	}
	if f.engine.Connections() != 1 {
		t.Fatalf("line between two stations should count as 1 connection, got %d", f.engine.Connections())
	}
}

func TestNoSessionOnEmptyCell(t *testing.T) {
	f := newFixture(t, hex.Axial{})
	f.down(hex.Axial{Q: 3, R: 3}, Primary)
	if f.editor.Drawing() {
		t.Fatalf("pointer-down on empty space must not start a session")
	}
}

func TestNoSelfIntersection(t *testing.T) {
	f := newFixture(t, hex.Axial{})
	f.down(hex.Axial{}, Primary)

	// Wander around, repeatedly re-crossing visited cells.
	cells := []hex.Axial{
		{Q: 1, R: 0}, {Q: 2, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}, {Q: 2, R: 1}, {Q: 1, R: 1}, {Q: 1, R: 0}, {Q: 0, R: 1}, {Q: 1, R: 1},
	}
	for _, c := range cells {
		f.move(c)
	}
	f.up(hex.Axial{Q: 0, R: 1}, Primary)

	all := f.store.All()
	if len(all) != 1 {
		t.Fatalf("expected one committed line, got %d", len(all))
	}
	seen := make(map[hex.Axial]bool)
	for _, p := range all[0].Points {
		if seen[p] {
			t.Fatalf("committed path repeats %v: %v", p, all[0].Points)
		}
		seen[p] = true
	}
}

func TestBacktrackShrinksPath(t *testing.T) {
	f := newFixture(t, hex.Axial{})
	f.down(hex.Axial{}, Primary)
	f.move(hex.Axial{Q: 1, R: 0})
	f.move(hex.Axial{Q: 2, R: 0})
	// Retrace one step: hovering the second-to-last cell pops the last.
	f.move(hex.Axial{Q: 1, R: 0})
	f.up(hex.Axial{Q: 1, R: 0}, Primary)

	got := f.store.All()[0].Points
	if len(got) != 2 || got[1] != (hex.Axial{Q: 1, R: 0}) {
		t.Fatalf("expected backtracked 2-point path, got %v", got)
	}
}

func TestExtendExistingLine(t *testing.T) {
	f := newFixture(t)
	f.store.CommitNew([]hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}}, "#e44", 6)

	f.down(hex.Axial{Q: 1, R: 0}, Primary)
	if !f.editor.Drawing() {
		t.Fatalf("pointer-down on a line endpoint must start a session")
	}
	f.move(hex.Axial{Q: 2, R: 0})
	f.up(hex.Axial{Q: 2, R: 0}, Primary)

	all := f.store.All()
	if len(all) != 1 {
		t.Fatalf("extension must not create a second line, got %d", len(all))
	}
	want := []hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}}
	for i, p := range want {
		if all[0].Points[i] != p {
			t.Fatalf("points = %v, want %v", all[0].Points, want)
		}
	}
}

func TestExtendCannotDrawBackOverLine(t *testing.T) {
	f := newFixture(t)
	f.store.CommitNew([]hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}}, "#e44", 6)

	// Anchor on the (2,0) endpoint, then try to drag back along the
	// line's own body before heading away.
	f.down(hex.Axial{Q: 2, R: 0}, Primary)
	f.move(hex.Axial{Q: 1, R: 0})
	f.move(hex.Axial{Q: 0, R: 0})
	f.move(hex.Axial{Q: 3, R: 0})
	f.up(hex.Axial{Q: 3, R: 0}, Primary)

	all := f.store.All()
	if len(all) != 1 {
		t.Fatalf("extension must not create a second line, got %d", len(all))
	}
	want := []hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}, {Q: 3, R: 0}}
	if len(all[0].Points) != len(want) {
		t.Fatalf("points = %v, want %v", all[0].Points, want)
	}
	seen := make(map[hex.Axial]bool)
	for i, p := range all[0].Points {
		if p != want[i] {
			t.Fatalf("points = %v, want %v", all[0].Points, want)
		}
		if seen[p] {
			t.Fatalf("extended line repeats %v: %v", p, all[0].Points)
		}
		seen[p] = true
	}
}

func TestSecondaryCancelsSession(t *testing.T) {
	f := newFixture(t, hex.Axial{})
	f.down(hex.Axial{}, Primary)
	f.move(hex.Axial{Q: 1, R: 0})
	f.down(hex.Axial{Q: 1, R: 0}, Secondary)

	if f.editor.Drawing() {
		t.Fatalf("secondary press must cancel the session")
	}
	f.up(hex.Axial{Q: 1, R: 0}, Primary)
	if len(f.store.All()) != 0 {
		t.Fatalf("cancelled session must not commit anything")
	}
}

func TestSinglePointDiscardedSilently(t *testing.T) {
	f := newFixture(t, hex.Axial{})
	f.down(hex.Axial{}, Primary)
	f.up(hex.Axial{}, Primary)
	if len(f.store.All()) != 0 {
		t.Fatalf("a 1-point path must be discarded, not committed")
	}
}

func TestRecolorLineBody(t *testing.T) {
	f := newFixture(t)
	f.editor.params.Palette = []string{"#e44", "#48e"}
	f.store.CommitNew([]hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}}, "#e44", 6)
	f.editor.SelectColor(1)

	// Click the interior waypoint cell: not an endpoint, not a station.
	f.down(hex.Axial{Q: 1, R: 0}, Primary)
	if f.editor.Drawing() {
		t.Fatalf("a body hit must not start a session")
	}
	if got := f.store.All()[0].Color; got != "#48e" {
		t.Fatalf("line color = %q, want %q", got, "#48e")
	}
}

func TestRecolorMissesOutsideThreshold(t *testing.T) {
	f := newFixture(t)
	f.store.CommitNew([]hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}}, "#e44", 6)
	f.editor.SelectColor(0)

	// A point far from any segment changes nothing.
	f.editor.PointerDown(500, 500, Primary)
	if got := f.store.All()[0].Color; got != "#e44" {
		t.Fatalf("far click recolored the line to %q", got)
	}
}

func TestSecondaryDragDeletesPerCell(t *testing.T) {
	f := newFixture(t)
	f.store.CommitNew([]hex.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 2, R: 0}, {Q: 3, R: 0}}, "#e44", 6)

	// Press on the interior (1,0): splits into [(0,0),(1,0)] and
	// [(1,0),(2,0),(3,0)].
	f.down(hex.Axial{Q: 1, R: 0}, Secondary)
	if len(f.store.All()) != 2 {
		t.Fatalf("expected a split, got %d lines", len(f.store.All()))
	}

	// Moving within the same cell must not reprocess it.
	f.move(hex.Axial{Q: 1, R: 0})
	if len(f.store.All()) != 2 {
		t.Fatalf("same-cell move reprocessed the delete")
	}

	// Dragging onto (2,0) splits the second line again.
	f.move(hex.Axial{Q: 2, R: 0})
	f.up(hex.Axial{Q: 2, R: 0}, Secondary)
	for _, l := range f.store.All() {
		if len(l.Points) < 2 {
			t.Fatalf("degenerate line survived: %v", l.Points)
		}
	}
}

func TestPreviewCarriesSyntheticPoint(t *testing.T) {
	f := newFixture(t, hex.Axial{})
	f.down(hex.Axial{}, Primary)
	f.editor.PointerMove(33.3, 44.4)

	pts := f.editor.PreviewPoints()
	if len(pts) < 2 {
		t.Fatalf("preview should include path plus pointer, got %v", pts)
	}
	last := pts[len(pts)-1]
	if last.X != 33.3 || last.Y != 44.4 {
		t.Fatalf("synthetic point = %+v, want the raw pointer position", last)
	}

	// The synthetic point never reaches the store.
	f.editor.PointerUp(33.3, 44.4, Primary)
	if f.editor.PreviewPoints() != nil {
		t.Fatalf("preview must clear after release")
	}
}
