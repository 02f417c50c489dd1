package hex

import "math"

// Axial represents axial coordinates (q, r) for pointy-top orientation.
type Axial struct {
	Q int
	R int
}

// Cube represents cube coordinates (x, y, z) with x+y+z=0.
type Cube struct {
	X int
	Y int
	Z int
}

// Directions for axial neighbors in pointy-top orientation.
var Directions = []Axial{
	{+1, 0}, {+1, -1}, {0, -1}, {-1, 0}, {-1, +1}, {0, +1},
}

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Mul scales an axial vector by k.
func (a Axial) Mul(k int) Axial { return Axial{a.Q * k, a.R * k} }

// ToCube converts axial to cube.
func (a Axial) ToCube() Cube {
	x := a.Q
	z := a.R
	y := -x - z
	return Cube{X: x, Y: y, Z: z}
}

// ToAxial converts cube to axial.
func (c Cube) ToAxial() Axial { return Axial{Q: c.X, R: c.Z} }

// DistanceAxial returns hex distance between two axial coords.
func DistanceAxial(a, b Axial) int {
	return DistanceCube(a.ToCube(), b.ToCube())
}

// DistanceCube returns hex distance between two cube coords.
func DistanceCube(a, b Cube) int {
	dx := int(math.Abs(float64(a.X - b.X)))
	dy := int(math.Abs(float64(a.Y - b.Y)))
	dz := int(math.Abs(float64(a.Z - b.Z)))
	if dx > dy && dx > dz {
		return dx
	}
	if dy > dz {
		return dy
	}
	return dz
}

// AxialToPixel converts axial to pixel coordinates for pointy-top layout.
// size is the hex radius (corner to center) in pixels.
func AxialToPixel(a Axial, size float64) (x, y float64) {
	// pointy-top: x = size*sqrt(3)*(q + r/2); y = size*3/2*r
	x = size * math.Sqrt(3) * (float64(a.Q) + float64(a.R)/2.0)
	y = size * 1.5 * float64(a.R)
	return
}

// PixelToAxial converts a pixel position back to the nearest axial cell for
// pointy-top layout. The inverse linear transform yields fractional cube
// coordinates which are then rounded with RoundCube, so the result is always
// the closest actual hex, never an inconsistent triple.
func PixelToAxial(x, y float64, size float64) Axial {
	q := (math.Sqrt(3)/3.0*x - 1.0/3.0*y) / size
	r := (2.0 / 3.0 * y) / size
	return RoundCube(q, r)
}

// RoundCube rounds fractional axial coordinates to the nearest hex cell.
// Each cube component is rounded to the nearest integer, then the component
// with the largest rounding error is recomputed from the other two so that
// x+y+z stays zero.
func RoundCube(fq, fr float64) Axial {
	fs := -fq - fr

	rq := math.Round(fq)
	rr := math.Round(fr)
	rs := math.Round(fs)

	dq := math.Abs(rq - fq)
	dr := math.Abs(rr - fr)
	ds := math.Abs(rs - fs)

	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}

	return Axial{Q: int(rq), R: int(rr)}
}
