package line

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gravitas-games/hexline/pkg/hex"
)

// ErrTooShort rejects commits and updates that would leave a line with
// fewer than two waypoints. Callers delete the line instead.
var ErrTooShort = errors.New("line needs at least two waypoints")

// Touch describes one line passing through a queried coordinate.
type Touch struct {
	Line    *Line
	IsFirst bool
	IsLast  bool
}

// Store owns the collection of persisted lines in insertion order.
// It is not safe for concurrent use; the session loop is the sole mutator.
type Store struct {
	lines    map[uuid.UUID]*Line
	order    []uuid.UUID
	onChange []func()
}

// NewStore creates an empty line store.
func NewStore() *Store {
	return &Store{lines: make(map[uuid.UUID]*Line)}
}

// OnChange registers fn to run on every Notify. Subscribers run in
// registration order.
func (s *Store) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Notify emits a single "changed" signal to all subscribers. Mutation
// entry points call it once per completed edit, however many individual
// commits, updates, and removals the edit performed.
func (s *Store) Notify() {
	for _, fn := range s.onChange {
		fn()
	}
}

// All returns the persisted lines in insertion order.
func (s *Store) All() []*Line {
	out := make([]*Line, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lines[id])
	}
	return out
}

// Get returns the line with the given ID.
func (s *Store) Get(id uuid.UUID) (*Line, bool) {
	l, ok := s.lines[id]
	return l, ok
}

// Touching returns, in insertion order, every line whose waypoint sequence
// contains c, flagging whether c is that line's first or last point.
func (s *Store) Touching(c hex.Axial) []Touch {
	var out []Touch
	for _, id := range s.order {
		l := s.lines[id]
		idx := l.IndexOf(c)
		if idx < 0 {
			continue
		}
		out = append(out, Touch{
			Line:    l,
			IsFirst: idx == 0,
			IsLast:  idx == len(l.Points)-1,
		})
	}
	return out
}

// CommitNew persists a new line with the given waypoints. The input slice
// is copied. Rejects sequences shorter than two points.
func (s *Store) CommitNew(points []hex.Axial, color string, width float64) (*Line, error) {
	if len(points) < 2 {
		return nil, ErrTooShort
	}
	l := &Line{
		ID:     uuid.New(),
		Points: append([]hex.Axial(nil), points...),
		Color:  color,
		Width:  width,
	}
	s.lines[l.ID] = l
	s.order = append(s.order, l.ID)
	return l, nil
}

// UpdatePoints replaces the waypoint sequence of an existing line.
// Rejects sequences shorter than two points; callers must Remove instead.
func (s *Store) UpdatePoints(id uuid.UUID, points []hex.Axial) error {
	if len(points) < 2 {
		return ErrTooShort
	}
	l, ok := s.lines[id]
	if !ok {
		return fmt.Errorf("update: unknown line %s", id)
	}
	l.Points = append([]hex.Axial(nil), points...)
	return nil
}

// SetColor recolors an existing line.
func (s *Store) SetColor(id uuid.UUID, color string) error {
	l, ok := s.lines[id]
	if !ok {
		return fmt.Errorf("recolor: unknown line %s", id)
	}
	l.Color = color
	return nil
}

// Remove deletes a line. Removing an unknown ID is a no-op.
func (s *Store) Remove(id uuid.UUID) {
	if _, ok := s.lines[id]; !ok {
		return
	}
	delete(s.lines, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
