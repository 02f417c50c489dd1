package grid

import (
	"math/rand"

	"github.com/gravitas-games/hexline/pkg/hex"
)

// BoundsPolicy decides which cells belong to the playfield and how to draw
// a uniform random candidate cell from it. Two policies exist: a hex-radius
// rule around the origin and a projected-pixel-margin rule; which one a grid
// uses is a configuration choice.
type BoundsPolicy interface {
	Contains(c hex.Axial) bool
	RandomCoord(rng *rand.Rand) hex.Axial
}

// RadiusBounds admits every cell within Radius hex steps of the origin.
type RadiusBounds struct {
	Radius int
	cells  []hex.Axial
}

// NewRadiusBounds creates a radius policy. The cell list is materialized once
// so random draws are uniform over the actual playfield.
func NewRadiusBounds(radius int) *RadiusBounds {
	return &RadiusBounds{
		Radius: radius,
		cells:  hex.Disk(hex.Axial{}, radius),
	}
}

func (b *RadiusBounds) Contains(c hex.Axial) bool {
	return hex.DistanceAxial(hex.Axial{}, c) <= b.Radius
}

func (b *RadiusBounds) RandomCoord(rng *rand.Rand) hex.Axial {
	return b.cells[rng.Intn(len(b.cells))]
}

// PixelBounds admits every cell whose projected center lands inside a
// margin-inset rectangle of the drawing layer.
type PixelBounds struct {
	HexSize float64
	Width   float64
	Height  float64
	Margin  float64
}

func (b PixelBounds) Contains(c hex.Axial) bool {
	x, y := hex.AxialToPixel(c, b.HexSize)
	return x >= b.Margin && x <= b.Width-b.Margin &&
		y >= b.Margin && y <= b.Height-b.Margin
}

func (b PixelBounds) RandomCoord(rng *rand.Rand) hex.Axial {
	x := b.Margin + rng.Float64()*(b.Width-2*b.Margin)
	y := b.Margin + rng.Float64()*(b.Height-2*b.Margin)
	return hex.PixelToAxial(x, y, b.HexSize)
}
