package engine

import "github.com/atomicstack/flyout/internal/menu"

// Bar is a menubar: a row of root menus whose triggers share one roving
// stop. Arrow keys move between triggers, and between open menus when the
// open menu does not consume them.
type Bar struct {
	trees []*Tree
	stop  int
	dir   Dir
}

// NewBar groups trees into a menubar. The reading direction of the first
// tree applies to the row.
func NewBar(trees ...*Tree) *Bar {
	b := &Bar{trees: trees}
	if len(trees) > 0 {
		b.dir = trees[0].opts.Dir
	}
	return b
}

func (b *Bar) Trees() []*Tree { return b.trees }

// Stop returns the index of the trigger holding the bar's stop.
func (b *Bar) Stop() int { return b.stop }

// Open returns the index of the open menu, or -1.
func (b *Bar) Open() int {
	for i, t := range b.trees {
		if t.IsOpen() {
			return i
		}
	}
	return -1
}

// Focused returns the element focused within the bar.
func (b *Bar) Focused() menu.Target {
	if i := b.Open(); i >= 0 {
		return b.trees[i].Focused()
	}
	if len(b.trees) == 0 {
		return menu.Target{}
	}
	return b.trees[b.stop].Focused()
}

// Tree returns the tree containing the menu with the given id.
func (b *Bar) Tree(menuID string) (*Tree, int, bool) {
	for i, t := range b.trees {
		if _, ok := t.nodes[menuID]; ok {
			return t, i, true
		}
	}
	return nil, -1, false
}

// Focus moves the bar stop to trigger i.
func (b *Bar) Focus(i int) {
	if i < 0 || i >= len(b.trees) {
		return
	}
	b.stop = i
	t := b.trees[i]
	t.requestFocus(menu.TriggerOf(t.root.id))
}

func (b *Bar) neighbour(i, step int) int {
	n := len(b.trees)
	return ((i+step)%n + n) % n
}

func (b *Bar) step(k menu.KeyCode) (int, bool) {
	switch k {
	case menu.KeyRight:
		if b.dir == RTL {
			return -1, true
		}
		return 1, true
	case menu.KeyLeft:
		if b.dir == RTL {
			return 1, true
		}
		return -1, true
	}
	return 0, false
}

// switchTo closes the open menu and opens menu j in its place.
func (b *Bar) switchTo(j int, keyboard bool) {
	if i := b.Open(); i >= 0 && i != j {
		b.trees[i].root.requestClose("menubar")
	}
	b.stop = j
	t := b.trees[j]
	if t.root.disabled {
		t.requestFocus(menu.TriggerOf(t.root.id))
		return
	}
	t.point = nil
	t.root.requestOpen(keyboard, keyboard)
}

// OpenMenu opens menu i, closing any other open menu first.
func (b *Bar) OpenMenu(i int, keyboard bool) {
	if i < 0 || i >= len(b.trees) {
		return
	}
	b.switchTo(i, keyboard)
}

// KeyDown delivers a key to the open menu, or to the focused trigger.
func (b *Bar) KeyDown(k menu.Key) bool {
	if len(b.trees) == 0 {
		return false
	}
	if i := b.Open(); i >= 0 {
		if b.trees[i].KeyDown(k) {
			return true
		}
		if step, ok := b.step(k.Code); ok {
			b.switchTo(b.neighbour(i, step), true)
			return true
		}
		return false
	}
	if step, ok := b.step(k.Code); ok {
		b.Focus(b.neighbour(b.stop, step))
		return true
	}
	return b.trees[b.stop].KeyDown(k)
}

// PointerDown delivers a pointer-down to every menu so each can arbitrate
// its own dismissal.
func (b *Bar) PointerDown(target menu.Target, p menu.Pointer) {
	for i, t := range b.trees {
		if target.Part == menu.PartTrigger && target.Menu == t.root.id {
			b.stop = i
		}
		t.PointerDown(target, p)
	}
}

// PointerMove switches menus when the pointer crosses another trigger
// while one is open.
func (b *Bar) PointerMove(target menu.Target) {
	if target.Part == menu.PartTrigger {
		if _, j, ok := b.Tree(target.Menu); ok {
			if i := b.Open(); i >= 0 && i != j {
				b.switchTo(j, false)
			}
		}
		return
	}
	if t, _, ok := b.Tree(target.Menu); ok {
		t.PointerMove(target)
	}
}

func (b *Bar) PointerLeave(target menu.Target) {
	if t, _, ok := b.Tree(target.Menu); ok {
		t.PointerLeave(target)
	}
}

func (b *Bar) PointerUp(target menu.Target) {
	if t, _, ok := b.Tree(target.Menu); ok {
		t.PointerUp(target)
	}
}

// Flush runs the deferred work of every menu.
func (b *Bar) Flush() int {
	count := 0
	for _, t := range b.trees {
		count += t.Flush()
	}
	return count
}

// Pending returns the deferred work waiting across all menus.
func (b *Bar) Pending() int {
	count := 0
	for _, t := range b.trees {
		count += t.Pending()
	}
	return count
}

// UnmountClosed completes pending closes in every menu.
func (b *Bar) UnmountClosed() int {
	count := 0
	for _, t := range b.trees {
		count += t.UnmountClosed()
	}
	return count
}

// Snapshot concatenates the snapshots of every menu in bar order.
func (b *Bar) Snapshot() []NodeSnapshot {
	var out []NodeSnapshot
	for _, t := range b.trees {
		out = append(out, t.Snapshot()...)
	}
	return out
}
