// Package focus holds the focus policy of an open menu tree and the narrow
// interfaces of the collaborators that carry it out.
package focus

import "github.com/atomicstack/flyout/internal/menu"

// Host moves logical focus between elements. Focus reports true when the
// move took effect immediately. A host that grants focus later returns false
// and reports the change through the tree's Focus method.
type Host interface {
	Focus(t menu.Target) bool
}

// Trap is the focus-trap primitive. It constrains focus to scope while
// trapped.
type Trap interface {
	SetTrapped(scope string, trapped bool)
}

// ScrollLock blocks outside scrolling while a menu is open. Acquire returns
// the release func.
type ScrollLock interface {
	Acquire(scope string) (release func())
}

// Anchor positions a content surface against its trigger. Place reports
// whether the surface is mounted.
type Anchor interface {
	Place(trigger, content menu.Target) bool
}

// HostFunc adapts a func to Host.
type HostFunc func(t menu.Target) bool

func (f HostFunc) Focus(t menu.Target) bool { return f(t) }

// AutoFocusEvent is delivered before the guard moves focus on mount or
// unmount. Preventing it leaves focus where it is.
type AutoFocusEvent struct {
	Target    menu.Target
	prevented bool
}

func (e *AutoFocusEvent) PreventDefault() {
	e.prevented = true
}

func (e *AutoFocusEvent) DefaultPrevented() bool {
	return e.prevented
}
