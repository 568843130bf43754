package engine

import "github.com/atomicstack/flyout/internal/menu"

// ItemSnapshot is the render state of one item.
type ItemSnapshot struct {
	ID          string
	Label       string
	Kind        menu.Kind
	Disabled    bool
	Checked     menu.CheckedState
	Highlighted bool
	// Submenu is the id of the menu a sub trigger opens.
	Submenu      string
	SubOpen      bool
	SubTriggerID string
	SubContentID string
}

// NodeSnapshot is the render state of one menu.
type NodeSnapshot struct {
	ID          string
	Parent      string
	TriggerItem string
	Depth       int
	Open        bool
	Mounted     bool
	ContentID   string
	TriggerID   string
	// Disabled is set on a root whose trigger is disabled.
	Disabled    bool
	Stop        string
	Search      string
	Items       []ItemSnapshot
}

// Snapshot captures the root and every mounted submenu, parents before
// children. It is recomputed from the live state on each call.
func (t *Tree) Snapshot() []NodeSnapshot {
	var out []NodeSnapshot
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.snapshot())
		for _, child := range n.children {
			if child.open || child.mounted {
				walk(child)
			}
		}
	}
	walk(t.root)
	return out
}

func (n *Node) snapshot() NodeSnapshot {
	s := NodeSnapshot{
		ID:        n.id,
		Depth:     n.depth,
		Open:      n.open,
		Mounted:   n.mounted,
		ContentID: n.contentID,
		TriggerID: n.triggerID,
		Disabled:  n.disabled,
		Stop:      n.level.Stop,
		Search:    n.level.Typeahead.Buffer(),
	}
	if n.parent != nil {
		s.Parent = n.parent.id
		s.TriggerItem = n.triggerItem
	}
	for _, item := range n.registry.List() {
		is := ItemSnapshot{
			ID:          item.ID,
			Label:       item.Label,
			Kind:        item.Kind,
			Disabled:    item.Disabled,
			Checked:     item.Checked,
			Highlighted: n.open && item.ID == n.level.Stop,
			Submenu:     item.Submenu,
		}
		if child, ok := n.Child(item.ID); ok {
			is.SubOpen = child.open
			is.SubTriggerID = child.triggerID
			if child.open {
				is.SubContentID = child.contentID
			}
		}
		s.Items = append(s.Items, is)
	}
	return s
}
