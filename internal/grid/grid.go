package grid

import (
	"errors"
	"math/rand"

	"github.com/gravitas-games/hexline/pkg/hex"
)

// Placement failures. Both are expected outcomes, never fatal.
var (
	ErrOutOfBounds = errors.New("coordinate outside grid bounds")
	ErrOccupied    = errors.New("cell already holds a station")
)

// defaultAttempts bounds the random-placement sampling loop.
const defaultAttempts = 800

// Grid owns the set of placed stations, keyed by axial coordinate.
type Grid struct {
	bounds   BoundsPolicy
	stations map[hex.Axial]*Station
	rng      *rand.Rand
	attempts int
}

// New creates an empty grid governed by the given bounds policy.
// attemptBudget caps the sampling loop in RandomEmptyCoord; zero or
// negative selects the default.
func New(bounds BoundsPolicy, attemptBudget int, rng *rand.Rand) *Grid {
	if attemptBudget <= 0 {
		attemptBudget = defaultAttempts
	}
	return &Grid{
		bounds:   bounds,
		stations: make(map[hex.Axial]*Station),
		rng:      rng,
		attempts: attemptBudget,
	}
}

// IsWithinBounds reports whether c belongs to the playfield.
func (g *Grid) IsWithinBounds(c hex.Axial) bool {
	return g.bounds.Contains(c)
}

// IsEmpty reports whether c has no station.
func (g *Grid) IsEmpty(c hex.Axial) bool {
	_, occupied := g.stations[c]
	return !occupied
}

// StationAt returns the station occupying c, if any.
func (g *Grid) StationAt(c hex.Axial) (*Station, bool) {
	s, ok := g.stations[c]
	return s, ok
}

// HasStation reports whether c is occupied by a station.
func (g *Grid) HasStation(c hex.Axial) bool {
	_, ok := g.stations[c]
	return ok
}

// Stations returns all placed stations.
func (g *Grid) Stations() []*Station {
	out := make([]*Station, 0, len(g.stations))
	for _, s := range g.stations {
		out = append(out, s)
	}
	return out
}

// PlaceStation places a station of the given kind and facing at coord.
// Returns ErrOutOfBounds or ErrOccupied when the cell cannot take one.
func (g *Grid) PlaceStation(kind Kind, facing Facing, coord hex.Axial) (*Station, error) {
	if !g.bounds.Contains(coord) {
		return nil, ErrOutOfBounds
	}
	if _, occupied := g.stations[coord]; occupied {
		return nil, ErrOccupied
	}
	s := &Station{Coord: coord, Kind: kind, Facing: facing}
	g.stations[coord] = s
	return s, nil
}

// RandomEmptyCoord draws uniform random candidates from the bounds policy
// until one is empty and at hex distance >= minSeparation from every placed
// station, or the attempt budget runs out. ok is false on exhaustion; the
// caller treats that as "could not place", not as an error.
func (g *Grid) RandomEmptyCoord(minSeparation int) (hex.Axial, bool) {
	for i := 0; i < g.attempts; i++ {
		c := g.bounds.RandomCoord(g.rng)
		if !g.bounds.Contains(c) {
			continue
		}
		if !g.IsEmpty(c) {
			continue
		}
		if minSeparation > 0 && !g.separated(c, minSeparation) {
			continue
		}
		return c, true
	}
	return hex.Axial{}, false
}

func (g *Grid) separated(c hex.Axial, minSeparation int) bool {
	for coord := range g.stations {
		if hex.DistanceAxial(c, coord) < minSeparation {
			return false
		}
	}
	return true
}
