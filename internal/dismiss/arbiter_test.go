package dismiss

import (
	"testing"

	"github.com/atomicstack/flyout/internal/menu"
)

type fakeLayer struct {
	id       string
	inside   map[menu.Target]bool
	trigger  menu.Target
	trap     map[menu.Target]bool
	blocking bool
}

func (f *fakeLayer) ID() string                        { return f.id }
func (f *fakeLayer) Contains(t menu.Target) bool       { return f.inside[t] }
func (f *fakeLayer) Trigger() (menu.Target, bool)      { return f.trigger, !f.trigger.IsZero() }
func (f *fakeLayer) Traps(t menu.Target) bool          { return f.trap != nil && !f.trap[t] }
func (f *fakeLayer) DisableOutsidePointerEvents() bool { return f.blocking }

// stack builds root "file" with submenu "recent" opened from item "file/recent".
func stack(rootTrapped, rootBlocking bool) (*Stack, *fakeLayer, *fakeLayer) {
	subTrigger := menu.ItemOf("file", "recent")
	root := &fakeLayer{
		id: "file",
		inside: map[menu.Target]bool{
			menu.ContentOf("file"):        true,
			subTrigger:                    true,
			menu.ItemOf("file", "new"):    true,
			menu.ContentOf("recent"):      true,
			menu.ItemOf("recent", "doc1"): true,
		},
		trigger:  menu.TriggerOf("file"),
		blocking: rootBlocking,
	}
	if rootTrapped {
		root.trap = root.inside
	}
	sub := &fakeLayer{
		id: "recent",
		inside: map[menu.Target]bool{
			menu.ContentOf("recent"):      true,
			menu.ItemOf("recent", "doc1"): true,
		},
		trigger: subTrigger,
		trap:    root.trap,
	}
	s := &Stack{}
	s.Push(root)
	s.Push(sub)
	return s, root, sub
}

func decisions(outcomes []Outcome) map[string]Outcome {
	out := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		out[o.Layer] = o
	}
	return out
}

func TestPointerDownOutsideDismissesEveryLayer(t *testing.T) {
	s, _, _ := stack(false, false)
	outcomes := NewArbiter(s).PointerDown(menu.Outside, menu.Pointer{})
	if len(outcomes) != 2 || outcomes[0].Layer != "recent" {
		t.Fatalf("expected innermost layer first, got %#v", outcomes)
	}
	for _, o := range outcomes {
		if o.Decision != Dismiss || !o.Permitted {
			t.Fatalf("expected permitted dismissal for %s, got %#v", o.Layer, o)
		}
	}
}

func TestPointerDownWithModifierIsNotPassThrough(t *testing.T) {
	s, _, _ := stack(false, false)
	outcomes := NewArbiter(s).PointerDown(menu.Outside, menu.Pointer{Mods: menu.ModCtrl})
	for _, o := range outcomes {
		if o.Decision != Dismiss || o.Permitted {
			t.Fatalf("expected non-permitted dismissal, got %#v", o)
		}
	}
	outcomes = NewArbiter(s).PointerDown(menu.Outside, menu.Pointer{Button: menu.ButtonSecondary})
	for _, o := range outcomes {
		if o.Permitted {
			t.Fatalf("expected secondary button not permitted, got %#v", o)
		}
	}
}

func TestPointerDownOnSubmenuTriggerIsSuppressed(t *testing.T) {
	s, _, _ := stack(false, false)
	got := decisions(NewArbiter(s).PointerDown(menu.ItemOf("file", "recent"), menu.Pointer{}))
	if got["recent"].Decision != SuppressTrigger {
		t.Fatalf("expected submenu trigger suppression, got %s", got["recent"].Decision)
	}
	if got["file"].Decision != Ignore {
		t.Fatalf("expected parent to ignore its own item, got %s", got["file"].Decision)
	}
}

func TestPointerDownInsideParentDismissesOnlyChild(t *testing.T) {
	s, _, _ := stack(false, false)
	got := decisions(NewArbiter(s).PointerDown(menu.ItemOf("file", "new"), menu.Pointer{}))
	if got["recent"].Decision != Dismiss {
		t.Fatalf("expected child dismissed, got %s", got["recent"].Decision)
	}
	if got["file"].Decision != Ignore {
		t.Fatalf("expected parent kept, got %s", got["file"].Decision)
	}
}

func TestBlockingLayerDisablesPassThrough(t *testing.T) {
	s, _, _ := stack(false, true)
	outcomes := NewArbiter(s).PointerDown(menu.Outside, menu.Pointer{})
	for _, o := range outcomes {
		if o.Decision != Dismiss || o.Permitted {
			t.Fatalf("expected dismissal without pass-through, got %#v", o)
		}
	}
}

func TestLayersBelowBlockingLayerAreBlocked(t *testing.T) {
	s := &Stack{}
	below := &fakeLayer{id: "below"}
	above := &fakeLayer{id: "above", blocking: true}
	s.Push(below)
	s.Push(above)
	got := decisions(NewArbiter(s).PointerDown(menu.Outside, menu.Pointer{}))
	if got["below"].Decision != Blocked {
		t.Fatalf("expected lower layer blocked, got %s", got["below"].Decision)
	}
	if got["above"].Decision != Dismiss {
		t.Fatalf("expected blocking layer dismissed, got %s", got["above"].Decision)
	}
}

func TestFocusOutsideTrappedIsSuppressed(t *testing.T) {
	s, _, _ := stack(true, false)
	for _, o := range NewArbiter(s).FocusOutside(menu.Outside) {
		if o.Decision != SuppressTrapped {
			t.Fatalf("expected trapped suppression for %s, got %s", o.Layer, o.Decision)
		}
	}
}

func TestFocusInsideTrapDismissesChildOnSibling(t *testing.T) {
	s, _, _ := stack(true, false)
	got := decisions(NewArbiter(s).FocusOutside(menu.ItemOf("file", "new")))
	if got["recent"].Decision != Dismiss {
		t.Fatalf("expected child dismissed when focus stays inside the trap, got %s", got["recent"].Decision)
	}
	if got["file"].Decision != Ignore {
		t.Fatalf("expected root kept, got %s", got["file"].Decision)
	}
}

func TestFocusOutsideUntrappedDismissesChildOnSibling(t *testing.T) {
	s, _, _ := stack(false, false)
	got := decisions(NewArbiter(s).FocusOutside(menu.ItemOf("file", "new")))
	if got["recent"].Decision != Dismiss {
		t.Fatalf("expected child dismissed on sibling focus, got %s", got["recent"].Decision)
	}
	got = decisions(NewArbiter(s).FocusOutside(menu.ItemOf("file", "recent")))
	if got["recent"].Decision != SuppressTrigger {
		t.Fatalf("expected focus on own trigger suppressed, got %s", got["recent"].Decision)
	}
}

func TestStackPushRemove(t *testing.T) {
	s := &Stack{}
	a := &fakeLayer{id: "a"}
	s.Push(a)
	s.Push(a)
	s.Push(&fakeLayer{id: "b"})
	if s.Len() != 2 {
		t.Fatalf("expected duplicate push ignored, got %v", s.IDs())
	}
	if top, _ := s.Top(); top.ID() != "b" {
		t.Fatalf("expected b on top")
	}
	if !s.Remove("a") || s.Remove("a") {
		t.Fatalf("expected single removal of a")
	}
	if ids := s.IDs(); len(ids) != 1 || ids[0] != "b" {
		t.Fatalf("unexpected ids %v", ids)
	}
}
