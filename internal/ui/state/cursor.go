package state

import "github.com/atomicstack/flyout/internal/menu"

// Direction is a roving focus request.
type Direction int

const (
	First Direction = iota
	Last
	Next
	Previous
)

func (d Direction) String() string {
	switch d {
	case First:
		return "first"
	case Last:
		return "last"
	case Next:
		return "next"
	default:
		return "previous"
	}
}

// Move resolves the item that should hold the stop after dir, given the
// enabled items in visual order. It reports false when nothing qualifies or
// the stop would not change.
func (l *Level) Move(dir Direction, items []menu.Item, loop bool) (menu.Item, bool) {
	n := len(items)
	if n == 0 {
		return menu.Item{}, false
	}
	current := IndexOf(items, l.Stop)
	target := current
	switch dir {
	case First:
		target = 0
	case Last:
		target = n - 1
	case Next:
		switch {
		case current < 0:
			target = 0
		case current < n-1:
			target = current + 1
		case loop:
			target = 0
		}
	case Previous:
		switch {
		case current < 0:
			target = n - 1
		case current > 0:
			target = current - 1
		case loop:
			target = n - 1
		}
	}
	if target == current {
		return menu.Item{}, false
	}
	return items[target], true
}
