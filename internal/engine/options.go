package engine

import (
	"errors"
	"time"

	"github.com/atomicstack/flyout/internal/focus"
	"github.com/atomicstack/flyout/internal/idgen"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/ui/state"
)

var (
	// ErrUnknownMenu is returned when an operation names a menu id that is
	// not part of the tree.
	ErrUnknownMenu = errors.New("unknown menu")
	// ErrDuplicateMenu is returned when a submenu id is already in use.
	ErrDuplicateMenu = errors.New("duplicate menu")
	// ErrNotSubTrigger is returned when a submenu is attached to an item
	// that is not a sub trigger.
	ErrNotSubTrigger = errors.New("item is not a sub trigger")
)

// Dir is the reading direction. It decides which arrow key opens and
// closes submenus.
type Dir int

const (
	LTR Dir = iota
	RTL
)

func (d Dir) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDir maps "ltr" and "rtl".
func ParseDir(s string) (Dir, bool) {
	switch s {
	case "", "ltr":
		return LTR, true
	case "rtl":
		return RTL, true
	}
	return LTR, false
}

func (d Dir) openKey() menu.KeyCode {
	if d == RTL {
		return menu.KeyLeft
	}
	return menu.KeyRight
}

func (d Dir) closeKey() menu.KeyCode {
	if d == RTL {
		return menu.KeyRight
	}
	return menu.KeyLeft
}

// SelectObserver receives item selections raised inside a menu or any of
// its submenus. Calling PreventDefault keeps the stack open.
type SelectObserver func(*menu.SelectEvent)

// Options configures a Tree. The zero value is usable.
type Options struct {
	Loop bool
	// Modal traps focus inside the root content while open.
	Modal bool
	// DisableOutsidePointerEvents blocks outside interaction while the root
	// is open; outside clicks still dismiss but never pass through.
	DisableOutsidePointerEvents bool
	Dir                         Dir
	TypeaheadTimeout            time.Duration

	Now func() time.Time
	IDs idgen.Generator

	Host       focus.Host
	Trap       focus.Trap
	ScrollLock focus.ScrollLock
	Anchor     focus.Anchor

	OnMountAutoFocus   func(*focus.AutoFocusEvent)
	OnUnmountAutoFocus func(*focus.AutoFocusEvent)
}

func (o Options) withDefaults() Options {
	if o.TypeaheadTimeout <= 0 {
		o.TypeaheadTimeout = state.DefaultTypeaheadTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.IDs == nil {
		o.IDs = idgen.Prefixed("flyout-", idgen.UUIDv7())
	}
	return o
}
