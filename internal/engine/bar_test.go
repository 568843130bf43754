package engine

import (
	"testing"

	"github.com/atomicstack/flyout/internal/idgen"
	"github.com/atomicstack/flyout/internal/menu"
)

func barTrees(t *testing.T) *Bar {
	t.Helper()
	ids := idgen.Sequential("id")
	var trees []*Tree
	for _, def := range []struct {
		id    string
		items []string
	}{
		{"file", []string{"new", "quit"}},
		{"edit", []string{"undo", "redo"}},
		{"view", []string{"zoom"}},
	} {
		tree := NewTree(def.id, Options{IDs: ids})
		var items []menu.Item
		for _, id := range def.items {
			items = append(items, menu.Item{ID: id, Label: id})
		}
		mustRegister(t, tree.Root(), items...)
		trees = append(trees, tree)
	}
	return NewBar(trees...)
}

func TestBarArrowKeysRoveTriggers(t *testing.T) {
	b := barTrees(t)
	b.Focus(0)
	b.KeyDown(menu.Press(menu.KeyLeft))
	if b.Stop() != 2 || b.Focused() != menu.TriggerOf("view") {
		t.Fatalf("expected wrap to last trigger, got stop=%d focus=%s", b.Stop(), b.Focused())
	}
	b.KeyDown(menu.Press(menu.KeyRight))
	if b.Stop() != 0 {
		t.Fatalf("expected wrap back to first trigger, got %d", b.Stop())
	}
	b.KeyDown(menu.Press(menu.KeyDown))
	if b.Open() != 0 || b.Focused() != menu.ItemOf("file", "new") {
		t.Fatalf("expected file open with first item focused, got open=%d focus=%s", b.Open(), b.Focused())
	}
}

func TestBarArrowMovesBetweenOpenMenus(t *testing.T) {
	b := barTrees(t)
	b.Focus(0)
	b.KeyDown(menu.Press(menu.KeyEnter))
	b.KeyDown(menu.Press(menu.KeyRight))
	if b.Open() != 1 {
		t.Fatalf("expected edit open, got %d", b.Open())
	}
	if b.Trees()[0].IsOpen() {
		t.Fatalf("expected file closed")
	}
	if b.Focused() != menu.ItemOf("edit", "undo") {
		t.Fatalf("expected first edit item, got %s", b.Focused())
	}
	b.KeyDown(menu.Press(menu.KeyLeft))
	if b.Open() != 0 {
		t.Fatalf("expected file open again, got %d", b.Open())
	}
}

func TestBarHoverSwitchesOpenMenu(t *testing.T) {
	b := barTrees(t)
	b.PointerMove(menu.TriggerOf("edit"))
	if b.Open() != -1 {
		t.Fatalf("expected hover alone not to open")
	}
	b.PointerDown(menu.TriggerOf("file"), menu.Pointer{})
	if b.Open() != 0 {
		t.Fatalf("expected click to open file")
	}
	b.PointerMove(menu.TriggerOf("view"))
	if b.Open() != 2 || b.Stop() != 2 {
		t.Fatalf("expected hover to switch to view, got open=%d stop=%d", b.Open(), b.Stop())
	}
}

func TestBarClickOnOtherTriggerSwitches(t *testing.T) {
	b := barTrees(t)
	b.PointerDown(menu.TriggerOf("file"), menu.Pointer{})
	b.PointerDown(menu.TriggerOf("edit"), menu.Pointer{})
	if b.Trees()[0].IsOpen() || !b.Trees()[1].IsOpen() {
		t.Fatalf("expected edit to replace file")
	}
	b.PointerUp(menu.ItemOf("edit", "redo"))
	if b.Open() != -1 {
		t.Fatalf("expected selection to close the bar menu")
	}
}

func TestBarOpenMenuReplacesOpenMenu(t *testing.T) {
	b := barTrees(t)
	b.OpenMenu(0, true)
	if b.Open() != 0 || b.Focused() != menu.ItemOf("file", "new") {
		t.Fatalf("expected file open from the keyboard, got open=%d focus=%s", b.Open(), b.Focused())
	}
	b.OpenMenu(2, false)
	if b.Open() != 2 || b.Stop() != 2 || b.Trees()[0].IsOpen() {
		t.Fatalf("expected view to replace file, got open=%d stop=%d", b.Open(), b.Stop())
	}
	b.OpenMenu(7, true)
	if b.Open() != 2 {
		t.Fatalf("expected out of range index to be ignored")
	}
}

func TestBarSkipsOpeningDisabledMenu(t *testing.T) {
	b := barTrees(t)
	b.Trees()[1].Root().SetDisabled(true)
	b.PointerDown(menu.TriggerOf("edit"), menu.Pointer{})
	if b.Open() != -1 {
		t.Fatalf("expected click on a disabled trigger to leave the bar closed, got %d", b.Open())
	}
	b.Focus(0)
	b.KeyDown(menu.Press(menu.KeyEnter))
	b.KeyDown(menu.Press(menu.KeyRight))
	if b.Open() != -1 || b.Stop() != 1 {
		t.Fatalf("expected arrow into the disabled menu to close file, got open=%d stop=%d", b.Open(), b.Stop())
	}
	if b.Focused() != menu.TriggerOf("edit") {
		t.Fatalf("expected focus on the disabled trigger, got %s", b.Focused())
	}
	b.KeyDown(menu.Press(menu.KeyEnter))
	if b.Open() != -1 {
		t.Fatalf("expected Enter on a disabled trigger to do nothing")
	}
}
