package dispatcher

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/flyout/internal/backend"
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/menu"
)

func testBar(t *testing.T) (*engine.Bar, *engine.Node) {
	t.Helper()
	tree := engine.NewTree("options", engine.Options{})
	items := []menu.Item{
		{ID: "status", Label: "Status", Kind: menu.KindCheckbox, Checked: menu.Checked},
		{ID: "even", Label: "Even", Kind: menu.KindRadio, Group: "layout", Checked: menu.Checked},
		{ID: "tiled", Label: "Tiled", Kind: menu.KindRadio, Group: "layout"},
		{ID: "reload", Label: "Reload"},
	}
	for i, item := range items {
		item.Position = i
		if err := tree.Root().Register(item); err != nil {
			t.Fatalf("register %s: %v", item.ID, err)
		}
	}
	return engine.NewBar(tree), tree.Root()
}

func checked(n *engine.Node, id string) menu.CheckedState {
	item, _ := n.Item(id)
	return item.Checked
}

func TestHandleCheckbox(t *testing.T) {
	bar, n := testBar(t)
	d := New(bar)
	target := menu.ItemOf("options", "status")
	res := d.Handle(backend.Event{Target: target, Checked: menu.Unchecked})
	if !reflect.DeepEqual(res.Updated, []menu.Target{target}) {
		t.Fatalf("expected status updated, got %v", res.Updated)
	}
	if checked(n, "status") != menu.Unchecked {
		t.Fatalf("expected status unchecked")
	}
	if res := d.Handle(backend.Event{Target: target, Checked: menu.Unchecked}); len(res.Updated) != 0 {
		t.Fatalf("expected unchanged state to report nothing, got %v", res.Updated)
	}
}

func TestHandleRadioKeepsGroupExclusive(t *testing.T) {
	bar, n := testBar(t)
	d := New(bar)
	res := d.Handle(backend.Event{Target: menu.ItemOf("options", "tiled"), Checked: menu.Checked})
	if len(res.Updated) != 2 {
		t.Fatalf("expected two radio updates, got %v", res.Updated)
	}
	if checked(n, "tiled") != menu.Checked || checked(n, "even") != menu.Unchecked {
		t.Fatalf("expected tiled to replace even")
	}
}

func TestHandleIgnoresErrorsAndUnknownTargets(t *testing.T) {
	bar, n := testBar(t)
	d := New(bar)
	events := []backend.Event{
		{Target: menu.ItemOf("options", "status"), Checked: menu.Unchecked, Err: errors.New("no server")},
		{Target: menu.ItemOf("missing", "status"), Checked: menu.Unchecked},
		{Target: menu.ItemOf("options", "missing"), Checked: menu.Unchecked},
		{Target: menu.ItemOf("options", "reload"), Checked: menu.Checked},
	}
	for _, evt := range events {
		if res := d.Handle(evt); len(res.Updated) != 0 {
			t.Fatalf("expected %+v to be ignored, got %v", evt, res.Updated)
		}
	}
	if checked(n, "status") != menu.Checked {
		t.Fatalf("expected status untouched")
	}
}
