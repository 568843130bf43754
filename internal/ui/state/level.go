package state

import (
	"time"

	"github.com/atomicstack/flyout/internal/menu"
)

// Level holds the interaction state of one open menu: the roving focus stop
// and the typeahead buffer. Both live only while the menu is open.
type Level struct {
	ID        string
	Stop      string
	Typeahead Typeahead
}

// NewLevel constructs a Level with no focus stop.
func NewLevel(id string, timeout time.Duration) *Level {
	return &Level{ID: id, Typeahead: Typeahead{Timeout: timeout}}
}

// SetStop moves the focus stop to id and returns the previous stop.
func (l *Level) SetStop(id string) string {
	prev := l.Stop
	l.Stop = id
	return prev
}

// Reset clears the focus stop and abandons any typeahead search.
func (l *Level) Reset() {
	l.Stop = ""
	l.Typeahead.Reset()
}

// IndexOf returns the index of the item with the given id, or -1.
func IndexOf(items []menu.Item, id string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
