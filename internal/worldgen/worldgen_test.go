package worldgen

import (
	"math/rand"
	"testing"

	"github.com/gravitas-games/hexline/internal/grid"
	"github.com/gravitas-games/hexline/pkg/hex"
)

func TestPopulate(t *testing.T) {
	g := grid.New(grid.NewRadiusBounds(8), 0, rand.New(rand.NewSource(42)))
	placed, err := Populate(g, 6, 2, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if placed != 8 {
		t.Fatalf("placed = %d, want 8", placed)
	}

	var starts, ends int
	stations := g.Stations()
	for _, s := range stations {
		switch s.Kind {
		case grid.Start:
			starts++
		case grid.End:
			ends++
		}
	}
	if starts != 1 || ends != 1 {
		t.Fatalf("starts=%d ends=%d, want exactly one of each", starts, ends)
	}

	// Pairwise separation holds for every placed pair.
	for i, a := range stations {
		for _, b := range stations[i+1:] {
			if d := hex.DistanceAxial(a.Coord, b.Coord); d < 2 {
				t.Fatalf("stations %v and %v at distance %d, want >= 2", a.Coord, b.Coord, d)
			}
		}
	}
}

func TestPopulateTightGrid(t *testing.T) {
	// Radius 1 holds 7 cells, so asking for 10 normal stations must
	// exhaust the placement budget without failing the call.
	g := grid.New(grid.NewRadiusBounds(1), 200, rand.New(rand.NewSource(9)))
	placed, err := Populate(g, 10, 0, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if placed < 2 || placed > 7 {
		t.Fatalf("placed = %d, want between 2 and 7", placed)
	}
}
