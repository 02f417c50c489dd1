package line

import (
	"log"

	"github.com/google/uuid"

	"github.com/gravitas-games/hexline/pkg/hex"
)

// StationIndex answers whether a cell holds a station. Satisfied by
// *grid.Grid.
type StationIndex interface {
	HasStation(c hex.Axial) bool
}

// Extension identifies the line and end a drawing session is extending.
type Extension struct {
	LineID    uuid.UUID
	FromStart bool
}

// Engine applies structural edits to a Store and keeps the derived
// connection count. The count is recomputed with a full pass over all
// lines after every edit: a single edit can change the endpoint-station
// status of lines it split off, and line counts stay small enough that
// incremental bookkeeping is not worth its complexity.
type Engine struct {
	store       *Store
	stations    StationIndex
	connections int
}

// NewEngine wires an engine to its store. The engine subscribes to the
// store's change signal, so the recount always runs before later
// subscribers (such as a snapshot broadcaster) observe the new state.
func NewEngine(store *Store, stations StationIndex) *Engine {
	e := &Engine{store: store, stations: stations}
	store.OnChange(e.recount)
	return e
}

// Connections returns the current connection count: the number of
// persisted lines whose first and last waypoints both sit on stations.
// Parallel lines between the same pair count independently.
func (e *Engine) Connections() int { return e.connections }

// Finalize commits a finished drawing-session path. With no extension the
// path becomes a new line; with one, the path is grafted onto the recorded
// end of the existing line, dropping the path's first point because it
// duplicates that line's endpoint. Any tail of the path that re-enters a
// cell the merged line already holds is cut off, so a line never loops
// back over itself. Paths shorter than two points are discarded silently.
func (e *Engine) Finalize(path []hex.Axial, color string, width float64, ext *Extension) {
	if ext == nil {
		if len(path) < 2 {
			return
		}
		if _, err := e.store.CommitNew(path, color, width); err != nil {
			log.Printf("finalize: commit rejected: %v", err)
			return
		}
		e.store.Notify()
		return
	}

	l, ok := e.store.Get(ext.LineID)
	if !ok {
		// The target vanished mid-session; fall back to a fresh line.
		e.Finalize(path, color, width, nil)
		return
	}

	rest := trimRevisits(path[1:], l.Points)
	var merged []hex.Axial
	if ext.FromStart {
		merged = make([]hex.Axial, 0, len(rest)+len(l.Points))
		for i := len(rest) - 1; i >= 0; i-- {
			merged = append(merged, rest[i])
		}
		merged = append(merged, l.Points...)
	} else {
		merged = make([]hex.Axial, 0, len(l.Points)+len(rest))
		merged = append(merged, l.Points...)
		merged = append(merged, rest...)
	}

	if len(merged) < 2 {
		e.store.Remove(l.ID)
	} else if err := e.store.UpdatePoints(l.ID, merged); err != nil {
		log.Printf("finalize: extension update rejected: %v", err)
		return
	}
	e.store.Notify()
}

// trimRevisits returns the longest prefix of path that stays clear of the
// existing waypoints and of itself. The editor blocks such moves at draw
// time, but Finalize still refuses to commit a self-looping merge.
func trimRevisits(path, existing []hex.Axial) []hex.Axial {
	seen := make(map[hex.Axial]bool, len(existing)+len(path))
	for _, p := range existing {
		seen[p] = true
	}
	for i, p := range path {
		if seen[p] {
			return path[:i]
		}
		seen[p] = true
	}
	return path
}

// DeleteAt removes the queried coordinate from the first line passing
// through it. A 2-point line dies whole; a removed endpoint shrinks the
// line (deleting it when it would drop below two points); an interior
// point splits the line into two segments that share the removed
// coordinate, so connectivity through that cell is preserved. Returns
// whether any line was touched.
func (e *Engine) DeleteAt(c hex.Axial) bool {
	touches := e.store.Touching(c)
	if len(touches) == 0 {
		return false
	}

	l := touches[0].Line
	idx := l.IndexOf(c)

	switch {
	case len(l.Points) == 2:
		e.store.Remove(l.ID)

	case idx == 0:
		e.shrink(l, l.Points[1:])

	case idx == len(l.Points)-1:
		e.shrink(l, l.Points[:idx])

	default:
		partA := append([]hex.Axial(nil), l.Points[:idx+1]...)
		partB := append([]hex.Axial(nil), l.Points[idx:]...)
		e.shrink(l, partA)
		if len(partB) >= 2 {
			if _, err := e.store.CommitNew(partB, l.Color, l.Width); err != nil {
				log.Printf("split: commit rejected: %v", err)
			}
		}
	}

	e.store.Notify()
	return true
}

// shrink updates l to the given points, deleting it when the result would
// be degenerate.
func (e *Engine) shrink(l *Line, points []hex.Axial) {
	if len(points) < 2 {
		e.store.Remove(l.ID)
		return
	}
	if err := e.store.UpdatePoints(l.ID, points); err != nil {
		log.Printf("shrink: update rejected: %v", err)
	}
}

func (e *Engine) recount() {
	count := 0
	for _, l := range e.store.All() {
		if len(l.Points) < 2 {
			continue
		}
		if e.stations.HasStation(l.First()) && e.stations.HasStation(l.Last()) {
			count++
		}
	}
	e.connections = count
}
