// Package engine is the menu state machine. A Tree owns one root menu and
// its nested submenus; it routes pointer, keyboard and focus events through
// the dismissal arbiter and the open-intent detectors and keeps the roving
// focus and typeahead state of every open level.
//
// All methods run on the caller's event loop and are not safe for
// concurrent use.
package engine

import (
	"fmt"

	"github.com/atomicstack/flyout/internal/dismiss"
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/ui/state"
)

// Point is a position in host coordinates.
type Point struct {
	X, Y int
}

// Tree is a root menu plus every submenu reachable from it.
type Tree struct {
	opts      Options
	root      *Node
	nodes     map[string]*Node
	stack     *dismiss.Stack
	arbiter   *dismiss.Arbiter
	focused   menu.Target
	queue     []func()
	observers []SelectObserver
	point     *Point
}

// NewTree creates a closed tree whose root menu has the given id.
func NewTree(rootID string, opts Options) *Tree {
	t := &Tree{
		opts:  opts.withDefaults(),
		nodes: make(map[string]*Node),
		stack: &dismiss.Stack{},
	}
	t.arbiter = dismiss.NewArbiter(t.stack)
	t.root = newNode(t, rootID, nil, "")
	t.nodes[rootID] = t.root
	return t
}

func (t *Tree) Root() *Node          { return t.root }
func (t *Tree) Options() Options     { return t.opts }
func (t *Tree) IsOpen() bool         { return t.root.open }
func (t *Tree) Focused() menu.Target { return t.focused }

// Menu returns the node with the given id.
func (t *Tree) Menu(id string) (*Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("menu %q: %w", id, ErrUnknownMenu)
	}
	return n, nil
}

// Layers returns the ids of the installed dismissal layers, outermost first.
func (t *Tree) Layers() []string {
	return t.stack.IDs()
}

// Point returns the position a context menu was opened at.
func (t *Tree) Point() (Point, bool) {
	if t.point == nil {
		return Point{}, false
	}
	return *t.point, true
}

// OnSelect registers an observer for every selection in the tree.
func (t *Tree) OnSelect(obs SelectObserver) {
	t.observers = append(t.observers, obs)
}

// Open opens the root menu as its trigger would.
func (t *Tree) Open(keyboard bool) {
	if t.root.disabled {
		return
	}
	t.point = nil
	t.root.Open(keyboard)
}

// OpenAt opens the root menu as a context menu at p.
func (t *Tree) OpenAt(x, y int) {
	if t.root.disabled {
		return
	}
	t.point = &Point{X: x, Y: y}
	t.root.requestOpen(false, false)
}

// Close closes the whole stack.
func (t *Tree) Close() {
	t.root.Close()
}

func (t *Tree) toggle(keyboard bool) {
	if t.root.disabled {
		return
	}
	if t.root.open {
		t.root.requestClose("trigger")
		return
	}
	t.point = nil
	t.root.requestOpen(keyboard, keyboard)
}

func (t *Tree) schedule(fn func()) {
	t.queue = append(t.queue, fn)
}

// Pending returns the number of deferred tasks waiting for Flush.
func (t *Tree) Pending() int {
	return len(t.queue)
}

// Flush runs the tasks deferred before this call; work they defer waits for
// the next Flush. It returns the number of tasks run.
func (t *Tree) Flush() int {
	queue := t.queue
	t.queue = nil
	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// UnmountClosed completes the close of every node that is closed but still
// mounted and returns how many were unmounted.
func (t *Tree) UnmountClosed() int {
	count := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.children {
			walk(child)
		}
		if n.Unmount() {
			count++
		}
	}
	walk(t.root)
	return count
}

func (t *Tree) requestFocus(target menu.Target) {
	if t.opts.Host == nil || t.opts.Host.Focus(target) {
		t.handleFocus(target)
	}
}

// Focus reports that target received focus. Hosts that grant focus
// asynchronously call it once the move happened; it also models focus being
// taken by anything outside the menu.
func (t *Tree) Focus(target menu.Target) {
	t.handleFocus(target)
}

func (t *Tree) handleFocus(target menu.Target) {
	if t.stack.Len() > 0 {
		outcomes := t.arbiter.FocusOutside(target)
		for _, o := range outcomes {
			if o.Decision != dismiss.SuppressTrapped {
				continue
			}
			events.Focus.Refuse(target.String(), t.focused.String())
			if t.opts.Host != nil && !t.focused.IsZero() {
				t.opts.Host.Focus(t.focused)
			}
			return
		}
		t.dismiss(outcomes, false)
	}

	if n, ok := t.nodes[target.Menu]; ok && n.open && target.Part != menu.PartTrigger {
		// Submenus still waiting for their layer are not seen by the arbiter.
		n.closeSiblings(target.Item, "focus-outside", true)
		switch target.Part {
		case menu.PartContent:
			n.moveStop("")
		case menu.PartItem:
			if item, ok := n.registry.Get(target.Item); ok && item.Focusable() {
				n.moveStop(target.Item)
			} else {
				n.moveStop("")
			}
		}
	}
	t.focused = target
	events.Focus.Move(target.String())

	if target.Part != menu.PartItem {
		return
	}
	if n, ok := t.nodes[target.Menu]; ok && n.open && n.level.Stop == target.Item {
		if d, ok := n.intents[target.Item]; ok {
			if req, ok := d.Focus(); ok {
				n.openSubmenu(target.Item, req)
			}
		}
	}
}

// dismiss closes the layers an arbiter outcome condemned and reports
// whether a pass-through pointer-down was permitted.
func (t *Tree) dismiss(outcomes []dismiss.Outcome, pointer bool) bool {
	permitted := false
	cause := "focus-outside"
	if pointer {
		cause = "pointerdown-outside"
	}
	for _, o := range outcomes {
		if o.Decision != dismiss.Dismiss {
			continue
		}
		n, ok := t.nodes[o.Layer]
		if !ok || !n.open {
			continue
		}
		// A focus move already placed focus outside, so nothing is restored.
		n.requestDismiss(cause, o.Permitted || !pointer)
		permitted = permitted || (o.Permitted && !n.open)
	}
	return permitted
}

// PointerDown delivers a pointer-down on target. Dismissal is settled before
// the target's own activation runs.
func (t *Tree) PointerDown(target menu.Target, p menu.Pointer) {
	if t.stack.Len() > 0 {
		if t.dismiss(t.arbiter.PointerDown(target, p), true) {
			t.requestFocus(target)
		}
	}
	if target == menu.TriggerOf(t.root.id) && p.Button == menu.ButtonPrimary && p.Mods&menu.ModCtrl == 0 {
		t.toggle(false)
	}
}

// PointerUp delivers a pointer-up; releasing over an enabled item selects it.
func (t *Tree) PointerUp(target menu.Target) {
	n, item, ok := t.itemAt(target)
	if !ok || !item.Focusable() {
		return
	}
	t.selectItem(n, item, false)
}

// PointerMove delivers pointer motion over target.
func (t *Tree) PointerMove(target menu.Target) {
	n, item, ok := t.itemAt(target)
	if !ok || item.Kind == menu.KindSeparator || item.Kind == menu.KindLabel {
		return
	}
	if item.Disabled {
		if content := menu.ContentOf(n.id); t.focused != content {
			t.requestFocus(content)
		}
		return
	}
	d, isTrigger := n.intents[item.ID]
	if isTrigger {
		child, _ := n.Child(item.ID)
		d.PointerMove(true, child != nil && child.open)
	}
	if t.focused != target {
		t.requestFocus(target)
		return
	}
	if isTrigger {
		if req, ok := d.Focus(); ok {
			n.openSubmenu(item.ID, req)
		}
	}
}

// PointerLeave delivers the pointer leaving target.
func (t *Tree) PointerLeave(target menu.Target) {
	n, item, ok := t.itemAt(target)
	if !ok {
		return
	}
	if d, ok := n.intents[item.ID]; ok {
		d.PointerLeave()
	}
	if n.level.Stop != item.ID {
		return
	}
	if child, ok := n.Child(item.ID); ok && child.open {
		return
	}
	t.requestFocus(menu.ContentOf(n.id))
}

// KeyDown delivers a key to the focused element and reports whether the
// menu consumed it.
func (t *Tree) KeyDown(k menu.Key) bool {
	target := t.focused
	switch target.Part {
	case menu.PartTrigger:
		if target.Menu != t.root.id {
			return false
		}
		switch k.Code {
		case menu.KeyEnter, menu.KeySpace:
			t.toggle(true)
			return true
		case menu.KeyDown:
			if !t.root.open {
				t.toggle(true)
			}
			return true
		}
	case menu.PartContent, menu.PartItem:
		if n, ok := t.nodes[target.Menu]; ok && n.open {
			return n.keyDown(k, target)
		}
	}
	return false
}

// Scroll moves the highlight of the open menu menuID one item down or up,
// regardless of which level holds focus.
func (t *Tree) Scroll(menuID string, down bool) bool {
	n, ok := t.nodes[menuID]
	if !ok || !n.open {
		return false
	}
	if down {
		return n.move(state.Next)
	}
	return n.move(state.Previous)
}

func (t *Tree) itemAt(target menu.Target) (*Node, menu.Item, bool) {
	if target.Part != menu.PartItem {
		return nil, menu.Item{}, false
	}
	n, ok := t.nodes[target.Menu]
	if !ok || !n.open {
		return nil, menu.Item{}, false
	}
	item, ok := n.registry.Get(target.Item)
	return n, item, ok
}

// selectItem runs the selection of item in n: the item's own handler, the
// check state, then observers from n up to the root. Each level's observers
// get their own event, so a level that prevents the default only speaks for
// itself. The stack closes unless the item's handler or the root level
// prevented it.
func (t *Tree) selectItem(n *Node, item menu.Item, keyboard bool) {
	if item.Kind == menu.KindSubTrigger {
		d := n.intents[item.ID]
		req := d.Click()
		if keyboard {
			req = d.Activate()
		}
		events.Menu.Select(n.id, item.ID, true)
		n.openSubmenu(item.ID, req)
		return
	}
	ev := &menu.SelectEvent{Item: item, Menu: n.id, Keyboard: keyboard}
	if item.OnSelect != nil {
		item.OnSelect(ev)
	}
	item = n.applyCheck(item)
	keep := ev.DefaultPrevented()
	for p := n; p != nil; p = p.parent {
		level := &menu.SelectEvent{Item: item, Menu: n.id, Keyboard: keyboard}
		for _, obs := range p.observers {
			obs(level)
		}
		if p.parent == nil {
			for _, obs := range t.observers {
				obs(level)
			}
			keep = keep || level.DefaultPrevented()
		}
	}
	events.Menu.Select(n.id, item.ID, keep)
	if !keep {
		t.root.requestClose("select")
	}
}
