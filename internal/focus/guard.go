package focus

import (
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
)

// Options configures a Guard.
type Options struct {
	// Trap constrains focus to the content while open.
	Trap bool
	// Restore moves focus back to the trigger on close.
	Restore bool

	OnMountAutoFocus   func(*AutoFocusEvent)
	OnUnmountAutoFocus func(*AutoFocusEvent)
}

// Guard applies the focus policy of one open menu level.
type Guard struct {
	scope   string
	trigger menu.Target
	content menu.Target
	opts    Options
	trap    Trap

	active    bool
	trapped   bool
	permitted bool
}

// NewGuard returns an inactive guard for scope. trap may be nil.
func NewGuard(scope string, trigger, content menu.Target, opts Options, trap Trap) *Guard {
	return &Guard{scope: scope, trigger: trigger, content: content, opts: opts, trap: trap}
}

func (g *Guard) setTrapped(trapped bool) {
	if g.trapped == trapped {
		return
	}
	g.trapped = trapped
	events.Focus.Trap(g.scope, trapped)
	if g.trap != nil {
		g.trap.SetTrapped(g.scope, trapped)
	}
}

// Activate engages the guard when the content mounts and returns where
// focus should go: the content itself, or first when focusFirst is set and
// first names an item. It reports false when auto-focus was prevented.
func (g *Guard) Activate(first menu.Target, focusFirst bool) (menu.Target, bool) {
	g.active = true
	g.setTrapped(g.opts.Trap && !g.permitted)
	target := g.content
	if focusFirst && !first.IsZero() {
		target = first
	}
	ev := &AutoFocusEvent{Target: target}
	if g.opts.OnMountAutoFocus != nil {
		g.opts.OnMountAutoFocus(ev)
	}
	if ev.DefaultPrevented() {
		return menu.Target{}, false
	}
	return ev.Target, true
}

// PermitPointerDownOutside records a pass-through click outside the content.
// The trap lets go so the outside target can keep focus.
func (g *Guard) PermitPointerDownOutside() {
	g.permitted = true
	g.setTrapped(false)
}

// Permitted reports whether a pass-through click was recorded.
func (g *Guard) Permitted() bool {
	return g.permitted
}

// Trapped reports whether the guard currently constrains focus.
func (g *Guard) Trapped() bool {
	return g.trapped
}

// Active reports whether the guard is engaged.
func (g *Guard) Active() bool {
	return g.active
}

// Deactivate releases the guard on close and returns the element focus
// should be restored to. Nothing is restored after a permitted pass-through
// click, when restoring is disabled, or when the unmount auto-focus is
// prevented. The permission is consumed.
func (g *Guard) Deactivate() (menu.Target, bool) {
	if !g.active {
		return menu.Target{}, false
	}
	g.active = false
	g.setTrapped(false)
	permitted := g.permitted
	g.permitted = false
	if permitted || !g.opts.Restore || g.trigger.IsZero() {
		return menu.Target{}, false
	}
	ev := &AutoFocusEvent{Target: g.trigger}
	if g.opts.OnUnmountAutoFocus != nil {
		g.opts.OnUnmountAutoFocus(ev)
	}
	if ev.DefaultPrevented() {
		return menu.Target{}, false
	}
	events.Focus.Restore(g.scope, ev.Target.String())
	return ev.Target, true
}
