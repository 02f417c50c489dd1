// Package worldgen performs the initial grid population: one start
// station, one end station, and a configurable scatter of normal stations.
package worldgen

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gravitas-games/hexline/internal/grid"
)

// Populate places the start and end stations plus up to normals further
// stations, keeping minSeparation hex steps between all of them. Returns
// the number of stations placed. Running out of placement attempts for a
// normal station is logged and skipped; failing to place start or end is
// an error because the grid is unusable without them.
func Populate(g *grid.Grid, normals, minSeparation int, rng *rand.Rand) (int, error) {
	placed := 0

	for _, kind := range []grid.Kind{grid.Start, grid.End} {
		c, ok := g.RandomEmptyCoord(minSeparation)
		if !ok {
			return placed, fmt.Errorf("no room for %s station", kind)
		}
		if _, err := g.PlaceStation(kind, randomFacing(rng), c); err != nil {
			return placed, fmt.Errorf("place %s station: %w", kind, err)
		}
		placed++
	}

	for i := 0; i < normals; i++ {
		c, ok := g.RandomEmptyCoord(minSeparation)
		if !ok {
			log.Printf("Placement budget exhausted after %d stations, skipping the rest", placed)
			break
		}
		if _, err := g.PlaceStation(grid.Normal, randomFacing(rng), c); err != nil {
			log.Printf("Skipping station at %v: %v", c, err)
			continue
		}
		placed++
	}

	log.Printf("Grid populated with %d stations", placed)
	return placed, nil
}

// randomFacing picks one of the six directions or the cell center.
func randomFacing(rng *rand.Rand) grid.Facing {
	return grid.Facing(rng.Intn(7) - 1)
}
