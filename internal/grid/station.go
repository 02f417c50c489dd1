package grid

import "github.com/gravitas-games/hexline/pkg/hex"

// Kind classifies a station. A fully populated grid has exactly one Start
// and one End; everything else is Normal.
type Kind int

const (
	Normal Kind = iota
	Start
	End
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "normal"
	}
}

// Facing is the orientation of a station: one of the six hex directions,
// or the cell center.
type Facing int

const (
	FacingCenter Facing = iota - 1
	FacingEast
	FacingNortheast
	FacingNorthwest
	FacingWest
	FacingSouthwest
	FacingSoutheast
)

// Direction returns the axial direction vector for this facing.
// ok is false for FacingCenter.
func (f Facing) Direction() (hex.Axial, bool) {
	if f < FacingEast || int(f) >= len(hex.Directions) {
		return hex.Axial{}, false
	}
	return hex.Directions[f], true
}

// Station is a placed station. Its identity is its axial coordinate;
// the grid enforces at most one station per cell.
type Station struct {
	Coord  hex.Axial
	Kind   Kind
	Facing Facing
}
