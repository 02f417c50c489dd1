package line

import (
	"github.com/google/uuid"

	"github.com/gravitas-games/hexline/pkg/hex"
)

// Line is a persisted multi-segment line. Identity is the opaque ID;
// Points is an ordered waypoint sequence of length >= 2. Waypoints may pass
// through empty cells; only the two endpoints matter for connections.
type Line struct {
	ID     uuid.UUID
	Points []hex.Axial
	Color  string
	Width  float64
}

// First returns the first waypoint.
func (l *Line) First() hex.Axial { return l.Points[0] }

// Last returns the last waypoint.
func (l *Line) Last() hex.Axial { return l.Points[len(l.Points)-1] }

// IndexOf returns the index of c within the waypoint sequence, or -1.
func (l *Line) IndexOf(c hex.Axial) int {
	for i, p := range l.Points {
		if p == c {
			return i
		}
	}
	return -1
}
