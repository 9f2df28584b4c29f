package overlay

import "iter"

// Store keeps placed stamps and committed shapes in insertion order.
// Insertion order is also draw order: later entries are drawn on top.
// Entries are only ever removed all at once by Reset.
type Store struct {
	stamps []Stamp
	shapes []Shape
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// AddStamp appends a stamp.
func (s *Store) AddStamp(st Stamp) {
	s.stamps = append(s.stamps, st)
}

// AddShape appends a committed shape.
func (s *Store) AddShape(sh Shape) {
	s.shapes = append(s.shapes, sh)
}

// Stamps returns a sequence over the stamps in insertion order.
// Each call starts a fresh iteration.
func (s *Store) Stamps() iter.Seq[Stamp] {
	return func(yield func(Stamp) bool) {
		for _, st := range s.stamps {
			if !yield(st) {
				return
			}
		}
	}
}

// Shapes returns a sequence over the committed shapes in insertion order.
// Each call starts a fresh iteration.
func (s *Store) Shapes() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for _, sh := range s.shapes {
			if !yield(sh) {
				return
			}
		}
	}
}

// StampCount returns the number of placed stamps.
func (s *Store) StampCount() int {
	return len(s.stamps)
}

// ShapeCount returns the number of committed shapes.
func (s *Store) ShapeCount() int {
	return len(s.shapes)
}

// Reset removes every stamp and shape.
func (s *Store) Reset() {
	s.stamps = nil
	s.shapes = nil
}
