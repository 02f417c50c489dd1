package editor

import (
	"math"

	"github.com/gravitas-games/hexline/internal/line"
	"github.com/gravitas-games/hexline/pkg/hex"
)

// lineBodyAt finds the line whose body passes closest to the pixel
// position, within that line's hit threshold (half its stroke width plus a
// fixed slop). The distance is measured perpendicular to the nearest point
// on the nearest segment.
func (e *Editor) lineBodyAt(x, y float64) (*line.Line, bool) {
	var best *line.Line
	bestDist := math.Inf(1)

	for _, l := range e.store.All() {
		threshold := l.Width/2 + e.params.HitSlop
		for i := 0; i+1 < len(l.Points); i++ {
			ax, ay := hex.AxialToPixel(l.Points[i], e.params.HexSize)
			bx, by := hex.AxialToPixel(l.Points[i+1], e.params.HexSize)
			d := pointSegmentDistance(x, y, ax, ay, bx, by)
			if d <= threshold && d < bestDist {
				bestDist = d
				best = l
			}
		}
	}
	return best, best != nil
}

// pointSegmentDistance returns the distance from point p to the closest
// point on segment ab.
func pointSegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
