package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/wesen/snapcanvas/pkg/geom"
)

var (
	// ErrNotFound is returned when an id does not name an element.
	ErrNotFound = errors.New("scene: element not found")
	// ErrNotGroupable is returned when a group request names fewer than two
	// top-level elements, or an ungroup request names a non-group.
	ErrNotGroupable = errors.New("scene: not groupable")
)

// Store keeps elements keyed by id with stable insertion-order iteration.
// It is not safe for concurrent mutation; readers get copies.
type Store struct {
	elements map[string]*Element
	orderIDs []string // insertion order for deterministic iteration
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{elements: make(map[string]*Element)}
}

// ── Element operations ──

// Add inserts el and returns its id. An empty ID gets a fresh UUID. Adding
// an existing id replaces the element in place.
func (s *Store) Add(el Element) string {
	if el.ID == "" {
		el.ID = uuid.NewString()
	}
	el.Children = slices.Clone(el.Children)
	if _, ok := s.elements[el.ID]; !ok {
		s.orderIDs = append(s.orderIDs, el.ID)
	}
	s.elements[el.ID] = &el
	return el.ID
}

// Get returns a copy of the element with the given id.
func (s *Store) Get(id string) (Element, bool) {
	el, ok := s.elements[id]
	if !ok {
		return Element{}, false
	}
	out := *el
	out.Children = slices.Clone(el.Children)
	return out, true
}

// Len returns the number of elements.
func (s *Store) Len() int { return len(s.orderIDs) }

// Elements returns copies of all elements in insertion order.
func (s *Store) Elements() []Element {
	out := make([]Element, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		if el, ok := s.Get(id); ok {
			out = append(out, el)
		}
	}
	return out
}

// Update applies fn to the stored element.
func (s *Store) Update(id string, fn func(*Element)) error {
	el, ok := s.elements[id]
	if !ok {
		return fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	fn(el)
	el.ID = id
	return nil
}

// Remove deletes the element. Removing a group removes everything inside
// it; removing a group member detaches it from its group.
func (s *Store) Remove(id string) {
	el, ok := s.elements[id]
	if !ok {
		return
	}
	doomed := append([]string{id}, Descendants(s.Elements(), id)...)

	if parent, ok := s.elements[el.ParentGroup]; ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(c string) bool { return c == id })
	}
	for _, d := range doomed {
		delete(s.elements, d)
	}
	s.orderIDs = slices.DeleteFunc(s.orderIDs, func(oid string) bool {
		_, alive := s.elements[oid]
		return !alive
	})
}

// Move translates the element, and every descendant when it is a group.
func (s *Store) Move(id string, dx, dy float64) error {
	if _, ok := s.elements[id]; !ok {
		return fmt.Errorf("move %q: %w", id, ErrNotFound)
	}
	ids := append([]string{id}, Descendants(s.Elements(), id)...)
	for _, mid := range ids {
		if el, ok := s.elements[mid]; ok {
			el.X += dx
			el.Y += dy
		}
	}
	return nil
}

// ── Groups ──

// Group wraps the given top-level elements in a new group sized to their
// union box and returns the group id.
func (s *Store) Group(ids []string) (string, error) {
	var members []string
	seen := make(map[string]bool)
	for _, id := range ids {
		el, ok := s.elements[id]
		if !ok || seen[id] || !el.IsTopLevel() {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}
	if len(members) < 2 {
		return "", fmt.Errorf("group %d candidates: %w", len(ids), ErrNotGroupable)
	}

	bounds, _ := s.BoundsOf(members)
	gid := s.Add(Element{
		Type:     TypeGroup,
		X:        bounds.X,
		Y:        bounds.Y,
		Width:    bounds.Width,
		Height:   bounds.Height,
		Visible:  true,
		ZIndex:   s.Len(),
		Children: members,
	})
	for _, id := range members {
		s.elements[id].ParentGroup = gid
	}
	return gid, nil
}

// Ungroup dissolves a group and returns the released child ids.
func (s *Store) Ungroup(id string) ([]string, error) {
	el, ok := s.elements[id]
	if !ok {
		return nil, fmt.Errorf("ungroup %q: %w", id, ErrNotFound)
	}
	if el.Type != TypeGroup {
		return nil, fmt.Errorf("ungroup %q (%s): %w", id, el.Type, ErrNotGroupable)
	}
	children := slices.Clone(el.Children)
	for _, c := range children {
		if child, ok := s.elements[c]; ok && child.ParentGroup == id {
			child.ParentGroup = ""
		}
	}
	delete(s.elements, id)
	s.orderIDs = slices.DeleteFunc(s.orderIDs, func(oid string) bool { return oid == id })
	return children, nil
}

// ── Spatial queries ──

// BoundsOf returns the union of the unrotated boxes of the named
// elements. ok is false when none of them exist.
func (s *Store) BoundsOf(ids []string) (r geom.Rect, ok bool) {
	for _, id := range ids {
		el, found := s.elements[id]
		if !found {
			continue
		}
		if !ok {
			r, ok = el.Rect(), true
			continue
		}
		r = r.Union(el.Rect())
	}
	return r, ok
}

// ContentBounds returns the union of all visible top-level elements'
// rotated boxes.
func (s *Store) ContentBounds() (r geom.Rect, ok bool) {
	for _, id := range s.orderIDs {
		el := s.elements[id]
		if !el.Visible || !el.IsTopLevel() {
			continue
		}
		box := geom.Box(el.Geometry()).AABB()
		if !ok {
			r, ok = box, true
			continue
		}
		r = r.Union(box)
	}
	return r, ok
}

// ElementsInRect returns the ids of visible top-level elements whose
// rotated box overlaps r, in insertion order.
func (s *Store) ElementsInRect(r geom.Rect) []string {
	var out []string
	for _, id := range s.orderIDs {
		el := s.elements[id]
		if !el.Visible || !el.IsTopLevel() {
			continue
		}
		if geom.Box(el.Geometry()).AABB().Overlaps(r) {
			out = append(out, id)
		}
	}
	return out
}
