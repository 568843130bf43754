package menu

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateRegistration is returned when an item id registers while
	// an item with the same id is still registered.
	ErrDuplicateRegistration = errors.New("duplicate item registration")
	// ErrUnknownItem is returned when an operation names an unregistered id.
	ErrUnknownItem = errors.New("unknown item")
)

// Handle identifies one registration. Unregistering a stale handle (one
// whose id has since re-registered) is a no-op.
type Handle struct {
	ID  string
	seq uint64
}

type entry struct {
	item Item
	seq  uint64
}

// Registry is the ordered collection of mounted items of one menu content.
// It is not safe for concurrent use; every call happens on the event loop.
type Registry struct {
	entries map[string]entry
	seq     uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds item and returns its handle.
func (r *Registry) Register(item Item) (Handle, error) {
	if item.ID == "" {
		return Handle{}, fmt.Errorf("register item: empty id")
	}
	if _, ok := r.entries[item.ID]; ok {
		return Handle{}, fmt.Errorf("register %q: %w", item.ID, ErrDuplicateRegistration)
	}
	r.seq++
	r.entries[item.ID] = entry{item: item, seq: r.seq}
	return Handle{ID: item.ID, seq: r.seq}, nil
}

// Unregister removes the registration behind h and reports whether it did.
func (r *Registry) Unregister(h Handle) bool {
	current, ok := r.entries[h.ID]
	if !ok || current.seq != h.seq {
		return false
	}
	delete(r.entries, h.ID)
	return true
}

// Update replaces the metadata of a registered item, keeping its handle.
func (r *Registry) Update(item Item) error {
	current, ok := r.entries[item.ID]
	if !ok {
		return fmt.Errorf("update %q: %w", item.ID, ErrUnknownItem)
	}
	current.item = item
	r.entries[item.ID] = current
	return nil
}

// Get returns the registered item with the given id.
func (r *Registry) Get(id string) (Item, bool) {
	e, ok := r.entries[id]
	return e.item, ok
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	return len(r.entries)
}

// List returns every registered item in visual order. Items sharing a
// position keep their registration order. The slice is freshly built on
// every call.
func (r *Registry) List() []Item {
	ordered := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		ordered = append(ordered, e)
	}
	slices.SortFunc(ordered, func(a, b entry) int {
		if a.item.Position != b.item.Position {
			return a.item.Position - b.item.Position
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	items := make([]Item, len(ordered))
	for i, e := range ordered {
		items[i] = e.item
	}
	return items
}

// Enabled returns the focusable items in visual order.
func (r *Registry) Enabled() []Item {
	all := r.List()
	out := all[:0]
	for _, item := range all {
		if item.Focusable() {
			out = append(out, item)
		}
	}
	return out
}

// Clear drops every registration.
func (r *Registry) Clear() {
	for id := range r.entries {
		delete(r.entries, id)
	}
}
