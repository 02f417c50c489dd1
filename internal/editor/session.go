package editor

import (
	"github.com/gravitas-games/hexline/internal/line"
	"github.com/gravitas-games/hexline/pkg/hex"
)

// session is the transient path under construction. It exists only while
// the primary button is held and is discarded, never persisted, on release
// or cancel.
type session struct {
	anchor hex.Axial
	path   []hex.Axial
	ext    *line.Extension

	// cells of the line being extended; the path may never enter them,
	// or the merged result would repeat a waypoint
	blocked map[hex.Axial]bool

	// raw pointer position, rendered as a synthetic trailing point for
	// continuous feedback; never part of the committed path
	pointerX float64
	pointerY float64
}

func newSession(anchor hex.Axial, ext *line.Extension, px, py float64, blocked []hex.Axial) *session {
	s := &session{
		anchor:   anchor,
		path:     []hex.Axial{anchor},
		ext:      ext,
		pointerX: px,
		pointerY: py,
	}
	if len(blocked) > 0 {
		s.blocked = make(map[hex.Axial]bool, len(blocked))
		for _, c := range blocked {
			s.blocked[c] = true
		}
	}
	return s
}

// hover advances the path toward the hovered cell. Retracing onto the
// second-to-last cell pops the last one (backtrack); a cell already in the
// path, or on the line being extended, is rejected, so neither the
// committed path nor the merged line can ever self-intersect; any
// genuinely new cell is appended.
func (s *session) hover(c hex.Axial) {
	n := len(s.path)
	if n >= 2 && c == s.path[n-2] {
		s.path = s.path[:n-1]
		return
	}
	if c == s.path[n-1] {
		return
	}
	if s.contains(c) || s.blocked[c] {
		return
	}
	s.path = append(s.path, c)
}

func (s *session) contains(c hex.Axial) bool {
	for _, p := range s.path {
		if p == c {
			return true
		}
	}
	return false
}
