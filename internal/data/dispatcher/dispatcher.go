package dispatcher

import (
	"github.com/atomicstack/flyout/internal/backend"
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
)

type Result struct {
	// Updated lists the items whose checked state changed.
	Updated []menu.Target
}

// Dispatcher applies probed item state to the menus of a bar.
type Dispatcher struct {
	bar *engine.Bar
}

func New(bar *engine.Bar) *Dispatcher {
	return &Dispatcher{bar: bar}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Probe.Error(evt.Target.String(), evt.Err)
		return res
	}
	tree, _, ok := d.bar.Tree(evt.Target.Menu)
	if !ok {
		return res
	}
	n, err := tree.Menu(evt.Target.Menu)
	if err != nil {
		return res
	}
	item, ok := n.Item(evt.Target.Item)
	if !ok {
		return res
	}
	switch item.Kind {
	case menu.KindCheckbox:
		res.set(n, item, evt.Checked)
	case menu.KindRadio:
		if evt.Checked != menu.Checked {
			res.set(n, item, menu.Unchecked)
			break
		}
		for _, other := range n.Items() {
			if other.Kind != menu.KindRadio || other.Group != item.Group {
				continue
			}
			want := menu.Unchecked
			if other.ID == item.ID {
				want = menu.Checked
			}
			res.set(n, other, want)
		}
	}
	return res
}

func (r *Result) set(n *engine.Node, item menu.Item, state menu.CheckedState) {
	if item.Checked == state {
		return
	}
	item.Checked = state
	if err := n.Update(item); err != nil {
		return
	}
	target := menu.ItemOf(n.ID(), item.ID)
	events.Probe.Apply(target.String(), int(state))
	r.Updated = append(r.Updated, target)
}
