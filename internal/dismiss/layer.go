package dismiss

import "github.com/atomicstack/flyout/internal/menu"

// Layer is one open menu surface taking part in dismissal.
type Layer interface {
	// ID names the layer; it is the menu id.
	ID() string
	// Contains reports whether t is inside the layer's content, including
	// the content of any layer opened from it.
	Contains(t menu.Target) bool
	// Trigger returns the element that opened the layer.
	Trigger() (menu.Target, bool)
	// Traps reports whether an active focus trap around the layer keeps t
	// from receiving focus.
	Traps(t menu.Target) bool
	// DisableOutsidePointerEvents reports whether the layer blocks pointer
	// interaction with everything outside it.
	DisableOutsidePointerEvents() bool
}

// Stack keeps layers in installation order, outermost first.
type Stack struct {
	layers []Layer
}

// Push installs l on top of the stack. Re-pushing an installed id is a no-op.
func (s *Stack) Push(l Layer) {
	if s.Index(l.ID()) >= 0 {
		return
	}
	s.layers = append(s.layers, l)
}

// Remove uninstalls the layer with the given id.
func (s *Stack) Remove(id string) bool {
	idx := s.Index(id)
	if idx < 0 {
		return false
	}
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	return true
}

// Index returns the position of id, or -1.
func (s *Stack) Index(id string) int {
	for i, l := range s.layers {
		if l.ID() == id {
			return i
		}
	}
	return -1
}

// Len returns the number of installed layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// IDs returns layer ids outermost first.
func (s *Stack) IDs() []string {
	out := make([]string, len(s.layers))
	for i, l := range s.layers {
		out[i] = l.ID()
	}
	return out
}

// Top returns the innermost layer.
func (s *Stack) Top() (Layer, bool) {
	if len(s.layers) == 0 {
		return nil, false
	}
	return s.layers[len(s.layers)-1], true
}

// blockingIndex returns the highest layer that disables outside pointer
// events, or -1.
func (s *Stack) blockingIndex() int {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].DisableOutsidePointerEvents() {
			return i
		}
	}
	return -1
}
