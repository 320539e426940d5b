package history

import (
	"fmt"
	"iter"
	"slices"

	"github.com/inamate/sketchboard/internal/document"
)

// Snapshot is an immutable ordered list of elements. Every update returns a
// new snapshot; element values are shared between snapshots, never copied.
// The zero value is an empty drawing.
type Snapshot struct {
	elements []document.Element
	index    map[document.ID]int
}

// NewSnapshot builds a snapshot holding elements in order. It panics if two
// elements share an id.
func NewSnapshot(elements ...document.Element) Snapshot {
	s := Snapshot{
		elements: slices.Clip(slices.Clone(elements)),
		index:    make(map[document.ID]int, len(elements)),
	}
	for i, el := range s.elements {
		if _, dup := s.index[el.ElementID()]; dup {
			panic(fmt.Sprintf("history: duplicate element id %d", el.ElementID()))
		}
		s.index[el.ElementID()] = i
	}
	return s
}

func (s Snapshot) Len() int { return len(s.elements) }

// At returns the element at position i in creation order.
func (s Snapshot) At(i int) document.Element { return s.elements[i] }

// Find returns the element with the given id.
func (s Snapshot) Find(id document.ID) (document.Element, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.elements[i], true
}

// IndexOf returns the list position of id, or -1.
func (s Snapshot) IndexOf(id document.ID) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Append returns a snapshot with el added at the end.
func (s Snapshot) Append(el document.Element) Snapshot {
	if _, dup := s.index[el.ElementID()]; dup {
		panic(fmt.Sprintf("history: duplicate element id %d", el.ElementID()))
	}
	// The backing array is clipped, so append always allocates.
	elements := append(s.elements, el)
	index := make(map[document.ID]int, len(elements))
	for id, i := range s.index {
		index[id] = i
	}
	index[el.ElementID()] = len(elements) - 1
	return Snapshot{elements: slices.Clip(elements), index: index}
}

// Replace returns a snapshot with the element of the same id swapped for el.
// It panics if the id is not present.
func (s Snapshot) Replace(el document.Element) Snapshot {
	i, ok := s.index[el.ElementID()]
	if !ok {
		panic(fmt.Sprintf("history: replace of missing element %d", el.ElementID()))
	}
	elements := slices.Clone(s.elements)
	elements[i] = el
	return Snapshot{elements: slices.Clip(elements), index: s.index}
}

// Remove returns a snapshot without the element id. Removing a missing id
// returns s unchanged and false.
func (s Snapshot) Remove(id document.ID) (Snapshot, bool) {
	i, ok := s.index[id]
	if !ok {
		return s, false
	}
	elements := make([]document.Element, 0, len(s.elements)-1)
	elements = append(elements, s.elements[:i]...)
	elements = append(elements, s.elements[i+1:]...)
	return NewSnapshot(elements...), true
}

// Elements returns a copy of the element list.
func (s Snapshot) Elements() []document.Element {
	return slices.Clone(s.elements)
}

// All iterates over the elements in creation order.
func (s Snapshot) All() iter.Seq[document.Element] {
	return slices.Values(s.elements)
}

// MaxID returns the largest element id, or -1 for an empty snapshot.
func (s Snapshot) MaxID() document.ID {
	maxID := document.ID(-1)
	for _, el := range s.elements {
		maxID = max(maxID, el.ElementID())
	}
	return maxID
}
