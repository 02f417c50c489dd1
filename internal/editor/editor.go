package editor

import (
	"github.com/gravitas-games/hexline/internal/grid"
	"github.com/gravitas-games/hexline/internal/line"
	"github.com/gravitas-games/hexline/pkg/hex"
)

// Button identifies which pointer button an event carries.
type Button int

const (
	Primary Button = iota
	Secondary
)

// Point is a pixel position in the drawing layer's coordinate space.
type Point struct {
	X float64
	Y float64
}

// Params configures an editor.
type Params struct {
	HexSize   float64
	Palette   []string
	LineWidth float64
	HitSlop   float64 // added to width/2 for line-body hit testing
}

// Editor dispatches pointer events to the drawing-session state machine
// and the mutation engine. It is single-actor: all methods are called
// synchronously from one event loop, and every mutation completes before
// the next event is observed.
type Editor struct {
	grid   *grid.Grid
	store  *line.Store
	engine *line.Engine
	params Params

	selected int // palette index

	sess          *session
	secondaryHeld bool
	lastDeleted   hex.Axial
	hasDeleted    bool
	hoverCell     hex.Axial
}

// New creates an editor over the given grid and store.
func New(g *grid.Grid, store *line.Store, engine *line.Engine, params Params) *Editor {
	if params.HexSize <= 0 {
		params.HexSize = 24
	}
	if len(params.Palette) == 0 {
		params.Palette = []string{"#d7263d", "#1b998b", "#2e86ab", "#f4a261"}
	}
	if params.LineWidth <= 0 {
		params.LineWidth = 6
	}
	if params.HitSlop <= 0 {
		params.HitSlop = 3
	}
	return &Editor{grid: g, store: store, engine: engine, params: params}
}

// SelectColor switches the active palette color. Out-of-range indices are
// ignored.
func (e *Editor) SelectColor(i int) {
	if i >= 0 && i < len(e.params.Palette) {
		e.selected = i
	}
}

// SelectedColor returns the active palette color.
func (e *Editor) SelectedColor() string { return e.params.Palette[e.selected] }

// Drawing reports whether a session is active.
func (e *Editor) Drawing() bool { return e.sess != nil }

// PointerDown handles a button press at pixel position (x, y).
func (e *Editor) PointerDown(x, y float64, b Button) {
	c := hex.PixelToAxial(x, y, e.params.HexSize)
	e.hoverCell = c

	if b == Secondary {
		if e.sess != nil {
			// Explicit cancel: discard everything, the store is untouched.
			e.sess = nil
			return
		}
		e.secondaryHeld = true
		e.engine.DeleteAt(c)
		e.lastDeleted = c
		e.hasDeleted = true
		return
	}

	if e.sess != nil {
		return
	}

	// Anchor on an existing line's endpoint first so the session records an
	// extension target, then on a bare station for a brand-new line.
	if t := e.endpointTouch(c); t != nil {
		ext := &line.Extension{LineID: t.Line.ID, FromStart: t.IsFirst}
		e.sess = newSession(c, ext, x, y, t.Line.Points)
		return
	}
	if _, ok := e.grid.StationAt(c); ok {
		e.sess = newSession(c, nil, x, y, nil)
		return
	}

	// Not a valid anchor. A click on a line's body recolors it instead of
	// starting a session; anywhere else is simply no session.
	if l, ok := e.lineBodyAt(x, y); ok {
		if err := e.store.SetColor(l.ID, e.SelectedColor()); err == nil {
			e.store.Notify()
		}
	}
}

// PointerMove handles pointer motion. Hover state updates first, then the
// path (or delete drag), so downstream snapshots never see a half-updated
// path.
func (e *Editor) PointerMove(x, y float64) {
	c := hex.PixelToAxial(x, y, e.params.HexSize)
	e.hoverCell = c

	if e.sess != nil {
		e.sess.hover(c)
		e.sess.pointerX = x
		e.sess.pointerY = y
		return
	}

	if e.secondaryHeld {
		if e.hasDeleted && c == e.lastDeleted {
			return
		}
		e.engine.DeleteAt(c)
		e.lastDeleted = c
		e.hasDeleted = true
	}
}

// PointerUp handles a button release.
func (e *Editor) PointerUp(x, y float64, b Button) {
	if b == Secondary {
		e.secondaryHeld = false
		e.hasDeleted = false
		return
	}

	if e.sess == nil {
		return
	}
	path := e.sess.path
	ext := e.sess.ext
	e.sess = nil

	// Fewer than two points is a silent discard, not an error.
	if len(path) >= 2 {
		e.engine.Finalize(path, e.SelectedColor(), e.params.LineWidth, ext)
	}
}

// PreviewPoints returns the in-progress path mapped to pixel space, with
// the synthetic trailing point at the live pointer position. Nil when no
// session is active.
func (e *Editor) PreviewPoints() []Point {
	if e.sess == nil {
		return nil
	}
	out := make([]Point, 0, len(e.sess.path)+1)
	for _, c := range e.sess.path {
		x, y := hex.AxialToPixel(c, e.params.HexSize)
		out = append(out, Point{X: x, Y: y})
	}
	return append(out, Point{X: e.sess.pointerX, Y: e.sess.pointerY})
}

// HoverCell returns the cell under the pointer as of the last event.
func (e *Editor) HoverCell() hex.Axial { return e.hoverCell }

// endpointTouch returns the touch when c is the first or last waypoint of
// some persisted line. The earliest committed line wins.
func (e *Editor) endpointTouch(c hex.Axial) *line.Touch {
	for _, t := range e.store.Touching(c) {
		if t.IsFirst || t.IsLast {
			t := t
			return &t
		}
	}
	return nil
}
