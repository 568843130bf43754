package engine

import (
	"fmt"

	"github.com/atomicstack/flyout/internal/focus"
	"github.com/atomicstack/flyout/internal/intent"
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/ui/state"
)

// Node is one menu instance: the root of a tree or a submenu opened from a
// sub trigger item of its parent.
type Node struct {
	id          string
	tree        *Tree
	parent      *Node
	triggerItem string
	children    []*Node
	depth       int

	registry *menu.Registry
	handles  map[string]menu.Handle
	level    *state.Level
	intents  map[string]*intent.Detector
	guard    *focus.Guard

	open       bool
	disabled   bool
	controlled bool
	onChange   func(bool)
	keyboard   bool
	focusFirst bool
	closeCause string
	// outsideFocus marks a close settled by a move outside the content; the
	// trigger does not get focus back.
	outsideFocus bool

	// gen invalidates deferred mounts scheduled for an earlier open.
	gen           uint64
	layered       bool
	mounted       bool
	contentID     string
	triggerID     string
	releaseScroll func()
	observers     []SelectObserver
}

func newNode(t *Tree, id string, parent *Node, triggerItem string) *Node {
	n := &Node{
		id:          id,
		tree:        t,
		parent:      parent,
		triggerItem: triggerItem,
		depth:       1,
		registry:    menu.NewRegistry(),
		handles:     make(map[string]menu.Handle),
		level:       state.NewLevel(id, t.opts.TypeaheadTimeout),
		intents:     make(map[string]*intent.Detector),
		triggerID:   t.opts.IDs(),
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	n.guard = focus.NewGuard(id, n.Trigger(), menu.ContentOf(id), focus.Options{
		Trap:               parent == nil && t.opts.Modal,
		Restore:            parent == nil,
		OnMountAutoFocus:   t.opts.OnMountAutoFocus,
		OnUnmountAutoFocus: t.opts.OnUnmountAutoFocus,
	}, t.opts.Trap)
	return n
}

func (n *Node) ID() string        { return n.id }
func (n *Node) Depth() int        { return n.depth }
func (n *Node) IsOpen() bool      { return n.open }
func (n *Node) Mounted() bool     { return n.mounted }
func (n *Node) ContentID() string { return n.contentID }
func (n *Node) TriggerID() string { return n.triggerID }
func (n *Node) Parent() *Node     { return n.parent }

// Stop returns the id of the item holding the roving focus stop.
func (n *Node) Stop() string { return n.level.Stop }

// Search returns the pending typeahead buffer.
func (n *Node) Search() string { return n.level.Typeahead.Buffer() }

// Trigger returns the element that opens this menu: the root trigger, or
// the sub trigger item in the parent.
func (n *Node) Trigger() menu.Target {
	if n.parent == nil {
		return menu.TriggerOf(n.id)
	}
	return menu.ItemOf(n.parent.id, n.triggerItem)
}

// Items returns the registered items in visual order.
func (n *Node) Items() []menu.Item { return n.registry.List() }

// Item returns one registered item.
func (n *Node) Item(id string) (menu.Item, bool) { return n.registry.Get(id) }

// Intent returns the open-intent detector of a sub trigger item.
func (n *Node) Intent(itemID string) (*intent.Detector, bool) {
	d, ok := n.intents[itemID]
	return d, ok
}

// Child returns the submenu opened by the given sub trigger item.
func (n *Node) Child(itemID string) (*Node, bool) {
	for _, c := range n.children {
		if c.triggerItem == itemID {
			return c, true
		}
	}
	return nil, false
}

// Register mounts an item into this menu's content.
func (n *Node) Register(item menu.Item) error {
	h, err := n.registry.Register(item)
	if err != nil {
		return fmt.Errorf("menu %q: %w", n.id, err)
	}
	n.handles[item.ID] = h
	if item.Kind == menu.KindSubTrigger {
		n.intents[item.ID] = intent.New(item.ID)
	}
	return nil
}

// Unregister unmounts an item. A submenu it opened closes with it.
func (n *Node) Unregister(id string) bool {
	h, ok := n.handles[id]
	if !ok || !n.registry.Unregister(h) {
		return false
	}
	delete(n.handles, id)
	delete(n.intents, id)
	if child, ok := n.Child(id); ok {
		child.closeCause = "unmount"
		child.cascadeClose()
	}
	if n.level.Stop == id {
		n.level.SetStop("")
	}
	return true
}

// Update replaces the metadata of a registered item.
func (n *Node) Update(item menu.Item) error {
	if err := n.registry.Update(item); err != nil {
		return fmt.Errorf("menu %q: %w", n.id, err)
	}
	if item.Kind == menu.KindSubTrigger {
		if _, ok := n.intents[item.ID]; !ok {
			n.intents[item.ID] = intent.New(item.ID)
		}
	} else {
		delete(n.intents, item.ID)
	}
	return nil
}

// AddSubmenu attaches a submenu with the given id to a registered sub
// trigger item.
func (n *Node) AddSubmenu(triggerItemID, id string) (*Node, error) {
	item, ok := n.registry.Get(triggerItemID)
	if !ok {
		return nil, fmt.Errorf("submenu %q of %q: %w", id, triggerItemID, menu.ErrUnknownItem)
	}
	if item.Kind != menu.KindSubTrigger {
		return nil, fmt.Errorf("submenu %q of %q: %w", id, triggerItemID, ErrNotSubTrigger)
	}
	if _, exists := n.tree.nodes[id]; exists {
		return nil, fmt.Errorf("submenu %q: %w", id, ErrDuplicateMenu)
	}
	if _, exists := n.Child(triggerItemID); exists {
		return nil, fmt.Errorf("item %q already opens a submenu: %w", triggerItemID, ErrDuplicateMenu)
	}
	child := newNode(n.tree, id, n, triggerItemID)
	n.children = append(n.children, child)
	n.tree.nodes[id] = child
	item.Submenu = id
	_ = n.registry.Update(item)
	return child, nil
}

// OnSelect registers an observer for selections inside this menu and its
// submenus.
func (n *Node) OnSelect(obs SelectObserver) {
	n.observers = append(n.observers, obs)
}

// SetDisabled disables the trigger of a root menu. A disabled trigger
// ignores pointer and keyboard activation. Node.Open and SetOpen still
// apply.
func (n *Node) SetDisabled(disabled bool) {
	n.disabled = disabled
}

func (n *Node) Disabled() bool { return n.disabled }

// Control puts the node in controlled mode. Open and close requests are
// reported to onChange and take effect only when the owner calls SetOpen.
func (n *Node) Control(onChange func(bool)) {
	n.controlled = true
	n.onChange = onChange
}

// OnOpenChange registers the change notification of an uncontrolled node.
func (n *Node) OnOpenChange(fn func(bool)) {
	n.onChange = fn
}

// Open requests the menu to open. Keyboard opens focus the first item.
func (n *Node) Open(keyboard bool) {
	n.requestOpen(keyboard, keyboard)
}

// Close requests the menu, and every submenu below it, to close.
func (n *Node) Close() {
	n.requestClose("request")
}

// CloseLevel closes this submenu only and moves focus to its own trigger.
func (n *Node) CloseLevel() {
	n.requestClose("close-level")
	if n.parent != nil {
		n.tree.requestFocus(n.Trigger())
	}
}

// SetOpen applies an open state without notifying. Controlled owners call
// it with the value they were notified of.
func (n *Node) SetOpen(open bool) {
	if open {
		n.applyOpen()
		return
	}
	n.applyClose()
}

func (n *Node) requestOpen(keyboard, focusFirst bool) {
	n.keyboard = keyboard
	n.focusFirst = focusFirst
	n.request(true)
}

func (n *Node) requestClose(cause string) {
	n.closeCause = cause
	n.request(false)
	n.closeCause = ""
}

// requestDismiss asks to close after an outside interaction. The outside
// target keeps focus only if the close is applied before this returns; a
// controlled owner that refuses leaves the guard as it was.
func (n *Node) requestDismiss(cause string, outside bool) {
	n.outsideFocus = outside
	n.requestClose(cause)
	n.outsideFocus = false
}

// request notifies the owner before anything is applied, in both modes.
func (n *Node) request(open bool) {
	if !n.canApply(open) {
		return
	}
	if n.onChange != nil {
		n.onChange(open)
	}
	if !n.controlled {
		n.SetOpen(open)
	}
}

func (n *Node) canApply(open bool) bool {
	if open == n.open {
		return false
	}
	return !open || n.parent == nil || n.parent.open
}

func (n *Node) applyOpen() bool {
	if !n.canApply(true) {
		return false
	}
	n.open = true
	n.gen++
	n.level.Reset()
	events.Menu.Open(n.id, n.depth, n.keyboard)
	gen := n.gen
	if n.parent == nil {
		n.mount(gen)
	} else {
		n.tree.schedule(func() { n.mount(gen) })
	}
	return true
}

// mount realizes the content surface: anchoring, content id, dismissal
// layer and focus guard.
func (n *Node) mount(gen uint64) {
	if !n.open || n.gen != gen || n.layered {
		return
	}
	if a := n.tree.opts.Anchor; a != nil && !a.Place(n.Trigger(), menu.ContentOf(n.id)) {
		n.tree.schedule(func() { n.mount(gen) })
		return
	}
	if n.contentID == "" {
		n.contentID = n.tree.opts.IDs()
	}
	n.mounted = true
	n.layered = true
	events.Menu.Mount(n.id, n.contentID)
	n.tree.stack.Push(layer{n})
	if n.parent == nil && n.tree.opts.Modal && n.tree.opts.ScrollLock != nil {
		n.releaseScroll = n.tree.opts.ScrollLock.Acquire(n.id)
	}

	keyboard, focusFirst := n.keyboard, n.focusFirst
	n.keyboard, n.focusFirst = false, false
	target, ok := n.guard.Activate(n.firstItem(), focusFirst)
	// A submenu opened by the pointer leaves focus on its trigger.
	if ok && (n.parent == nil || keyboard) {
		n.tree.requestFocus(target)
	}
}

func (n *Node) firstItem() menu.Target {
	items := n.registry.Enabled()
	if len(items) == 0 {
		return menu.Target{}
	}
	return menu.ItemOf(n.id, items[0].ID)
}

// cascadeClose closes a descendant because its parent closed. The owner is
// notified, but a controlled owner cannot keep it open.
func (n *Node) cascadeClose() {
	if !n.open {
		return
	}
	if n.onChange != nil {
		n.onChange(false)
	}
	n.applyClose()
}

func (n *Node) applyClose() bool {
	if !n.open {
		return false
	}
	cause := n.closeCause
	if cause == "" {
		cause = "request"
	}
	n.closeCause = ""
	for _, child := range n.children {
		child.closeCause = "parent"
		child.cascadeClose()
	}
	n.open = false
	n.gen++
	n.keyboard, n.focusFirst = false, false
	for _, item := range n.registry.List() {
		if d, ok := n.intents[item.ID]; ok {
			d.Reset()
		}
	}
	n.level.Reset()
	events.Menu.Close(n.id, cause)
	if !n.layered {
		return true
	}
	n.layered = false
	n.tree.stack.Remove(n.id)
	if n.outsideFocus {
		n.guard.PermitPointerDownOutside()
	}
	if n.releaseScroll != nil {
		n.releaseScroll()
		n.releaseScroll = nil
	}
	if target, ok := n.guard.Deactivate(); ok {
		n.tree.requestFocus(target)
	}
	return true
}

// Unmount finishes a close once the content has left the screen, along
// with any submenu content still mounted below it. It is a no-op while the
// menu is open.
func (n *Node) Unmount() bool {
	if n.open || !n.mounted {
		return false
	}
	for _, child := range n.children {
		child.Unmount()
	}
	n.mounted = false
	events.Menu.Unmount(n.id)
	return true
}

// contains reports logical containment: this content, its items, or
// anything inside an open submenu below it.
func (n *Node) contains(t menu.Target) bool {
	if t.Menu == n.id && (t.Part == menu.PartContent || t.Part == menu.PartItem) {
		return true
	}
	for _, child := range n.children {
		if child.open && child.contains(t) {
			return true
		}
	}
	return false
}

func (n *Node) trapped() bool {
	for p := n; p != nil; p = p.parent {
		if p.guard.Trapped() {
			return true
		}
	}
	return false
}

// moveStop hands the roving stop to id, delivering item-leave for the
// previous stop first.
func (n *Node) moveStop(id string) {
	prev := n.level.Stop
	if prev == id {
		return
	}
	if prev != "" {
		if d, ok := n.intents[prev]; ok {
			d.PointerLeave()
		}
		if item, ok := n.registry.Get(prev); ok {
			events.Focus.Leave(n.id, prev)
			if item.OnLeave != nil {
				item.OnLeave(item)
			}
		}
	}
	n.level.SetStop(id)
}

// closeSiblings closes every open submenu of n except the one behind keep.
// With pendingOnly set it leaves submenus whose layer is installed to the
// dismissal arbiter.
func (n *Node) closeSiblings(keep, cause string, pendingOnly bool) {
	for _, child := range n.children {
		if !child.open || child.triggerItem == keep || (pendingOnly && child.layered) {
			continue
		}
		child.requestClose(cause)
	}
}

func (n *Node) openSubmenu(itemID string, req intent.Request) {
	d, ok := n.intents[itemID]
	if !ok {
		return
	}
	defer d.Settle()
	child, ok := n.Child(itemID)
	if !ok || !n.open {
		return
	}
	if child.open {
		if req.FocusFirst && child.layered {
			if first := child.firstItem(); !first.IsZero() {
				n.tree.requestFocus(first)
			}
		}
		return
	}
	n.closeSiblings(itemID, "sibling", false)
	child.requestOpen(req.Source == intent.SourceKeyboard, req.FocusFirst)
}

func (n *Node) move(dir state.Direction) bool {
	if item, ok := n.level.Move(dir, n.registry.Enabled(), n.tree.opts.Loop); ok {
		n.tree.requestFocus(menu.ItemOf(n.id, item.ID))
	}
	return true
}

func (n *Node) typeahead(r rune) bool {
	if !state.Printable(r) {
		return false
	}
	item, ok := n.level.Typeahead.OnCharacter(r, n.registry.Enabled(), n.level.Stop, n.tree.opts.Now())
	if ok {
		events.Typeahead.Match(n.id, n.level.Typeahead.Buffer(), item.ID)
		n.tree.requestFocus(menu.ItemOf(n.id, item.ID))
	}
	return true
}

func (n *Node) keyDown(k menu.Key, target menu.Target) bool {
	t := n.tree
	switch k.Code {
	case menu.KeyEscape:
		t.root.requestClose("escape")
		return true
	case menu.KeyTab:
		return n.trapped()
	}

	var item menu.Item
	onItem := false
	if target.Part == menu.PartItem {
		item, onItem = n.registry.Get(target.Item)
		onItem = onItem && item.Focusable()
	}
	typing := n.level.Typeahead.Active(t.opts.Now())
	activate := k.Code == menu.KeyEnter || (k.Code == menu.KeySpace && !typing)

	if onItem && item.Kind == menu.KindSubTrigger && (activate || k.Code == t.opts.Dir.openKey()) {
		n.openSubmenu(item.ID, n.intents[item.ID].Activate())
		return true
	}
	if activate {
		if onItem {
			t.selectItem(n, item, true)
		}
		return true
	}
	if k.Code == t.opts.Dir.closeKey() && n.parent != nil {
		n.CloseLevel()
		return true
	}

	switch k.Code {
	case menu.KeyHome, menu.KeyPageUp:
		return n.move(state.First)
	case menu.KeyEnd, menu.KeyPageDown:
		return n.move(state.Last)
	case menu.KeyDown:
		return n.move(state.Next)
	case menu.KeyUp:
		return n.move(state.Previous)
	case menu.KeySpace:
		return n.typeahead(' ')
	case menu.KeyRune:
		if k.Mods&(menu.ModCtrl|menu.ModAlt|menu.ModMeta) != 0 {
			return false
		}
		return n.typeahead(k.Rune)
	}
	return false
}

// applyCheck toggles a checkbox or selects a radio within its group and
// returns the updated item.
func (n *Node) applyCheck(item menu.Item) menu.Item {
	switch item.Kind {
	case menu.KindCheckbox:
		if item.Checked == menu.Checked {
			item.Checked = menu.Unchecked
		} else {
			item.Checked = menu.Checked
		}
		_ = n.registry.Update(item)
	case menu.KindRadio:
		for _, other := range n.registry.List() {
			if other.Kind != menu.KindRadio || other.Group != item.Group {
				continue
			}
			want := menu.Unchecked
			if other.ID == item.ID {
				want = menu.Checked
			}
			if other.Checked != want {
				other.Checked = want
				_ = n.registry.Update(other)
			}
		}
		item.Checked = menu.Checked
	}
	return item
}

// layer adapts a Node to the dismissal stack.
type layer struct {
	n *Node
}

func (l layer) ID() string                  { return l.n.id }
func (l layer) Contains(t menu.Target) bool { return l.n.contains(t) }

func (l layer) Trigger() (menu.Target, bool) {
	return l.n.Trigger(), true
}

func (l layer) Traps(t menu.Target) bool {
	for p := l.n; p != nil; p = p.parent {
		if p.guard.Trapped() && !p.contains(t) {
			return true
		}
	}
	return false
}

func (l layer) DisableOutsidePointerEvents() bool {
	return l.n.parent == nil && l.n.tree.opts.DisableOutsidePointerEvents
}
